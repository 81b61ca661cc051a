package sensor

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// ErrShortResponse is returned when a slave answers with fewer bytes than one register.
var ErrShortResponse = errors.New("short modbus response")

// rawPerDegree is the fixed-point scale of the probe register (0.1 °C per unit).
const rawPerDegree = 10.0

// RegisterReader is the subset of modbus.Client used by the bus.
type RegisterReader interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
}

// Bus serializes requests on one RS485 line shared by several slaves.
type Bus struct {
	mu       sync.Mutex
	client   RegisterReader
	setSlave func(id byte)
	closer   io.Closer
}

// NewBus builds a bus over an existing client. setSlave selects the target
// slave before each request.
func NewBus(client RegisterReader, setSlave func(id byte), closer io.Closer) *Bus {
	return &Bus{client: client, setSlave: setSlave, closer: closer}
}

// RTUConfig describes a serial line.
type RTUConfig struct {
	Device   string
	BaudRate int
	Timeout  time.Duration
}

// OpenRTU connects to a Modbus RTU line (8N1).
func OpenRTU(cfg RTUConfig) (*Bus, error) {
	h := modbus.NewRTUClientHandler(cfg.Device)
	h.BaudRate = cfg.BaudRate
	h.DataBits = 8
	h.Parity = "N"
	h.StopBits = 1
	h.Timeout = cfg.Timeout
	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("open rtu %s: %w", cfg.Device, err)
	}
	return NewBus(modbus.NewClient(h), func(id byte) { h.SlaveId = id }, h), nil
}

// OpenTCP connects to a Modbus TCP gateway.
func OpenTCP(addr string, timeout time.Duration) (*Bus, error) {
	h := modbus.NewTCPClientHandler(addr)
	h.Timeout = timeout
	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("open tcp %s: %w", addr, err)
	}
	return NewBus(modbus.NewClient(h), func(id byte) { h.SlaveId = id }, h), nil
}

// Close releases the underlying line.
func (b *Bus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}

// Probe returns the probe at slave id reading the given holding register.
func (b *Bus) Probe(slaveID byte, register uint16) Probe {
	return &modbusProbe{bus: b, slaveID: slaveID, register: register}
}

func (b *Bus) readRegister(slaveID byte, register uint16) (uint16, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.setSlave != nil {
		b.setSlave(slaveID)
	}
	raw, err := b.client.ReadHoldingRegisters(register, 1)
	if err != nil {
		return 0, err
	}
	if len(raw) < 2 {
		return 0, ErrShortResponse
	}
	return binary.BigEndian.Uint16(raw), nil
}

type modbusProbe struct {
	bus      *Bus
	slaveID  byte
	register uint16
}

func (p *modbusProbe) Name() string { return fmt.Sprintf("slave %d", p.slaveID) }

func (p *modbusProbe) ReadCelsius(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	raw, err := p.bus.readRegister(p.slaveID, p.register)
	if err != nil {
		return 0, err
	}
	return float64(raw) / rawPerDegree, nil
}
