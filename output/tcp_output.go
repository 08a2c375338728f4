package output

import (
	"net"
	"sync"
	"time"

	"github.com/childe/omitter/codec"
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

// TCPConfig defines the configuration structure for TCP output
type TCPConfig struct {
	Network     string        `mapstructure:"network"`
	Address     string        `mapstructure:"address"`
	Codec       string        `mapstructure:"codec"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	KeepAlive   time.Duration `mapstructure:"keepalive"`
	// RetryInterval is the sleep between two failed dials
	RetryInterval time.Duration `mapstructure:"retry_interval"`
}

// TCPOutput writes one encoded event per line to a TCP connection,
// reconnecting when a write fails.
type TCPOutput struct {
	config  TCPConfig
	encoder codec.Encoder

	lock sync.Mutex
	conn net.Conn

	once sync.Once
	stop chan struct{}
}

func init() {
	Register("TCP", newTCPOutput)
}

func newTCPOutput(config map[any]any) topology.Output {
	return NewTCPOutput(config)
}

func NewTCPOutput(config map[any]any) *TCPOutput {
	tcpConfig := TCPConfig{
		Network:       "tcp",
		RetryInterval: 10 * time.Second,
	}
	SafeDecodeConfig("TCP", config, &tcpConfig)
	if tcpConfig.Address == "" {
		klog.Fatal("TCP output: 'address' is required")
	}

	encoder, err := codec.NewEncoder(tcpConfig.Codec)
	if err != nil {
		klog.Fatalf("TCP output: %v", err)
	}

	return &TCPOutput{
		config:  tcpConfig,
		encoder: encoder,
		stop:    make(chan struct{}),
	}
}

// loopDial returns false only if the output has been shut down. p.lock must be held.
func (p *TCPOutput) loopDial() bool {
	for {
		select {
		case <-p.stop:
			return false
		default:
		}

		d := net.Dialer{Timeout: p.config.DialTimeout, KeepAlive: p.config.KeepAlive}
		conn, err := d.Dial(p.config.Network, p.config.Address)
		if err == nil {
			klog.Infof("conn built to %s", conn.RemoteAddr())
			p.conn = conn
			return true
		}

		klog.Errorf("dial %s error: %v. sleep %s", p.config.Address, err, p.config.RetryInterval)
		select {
		case <-p.stop:
		case <-time.After(p.config.RetryInterval):
		}
	}
}

func (p *TCPOutput) Emit(event map[string]any) {
	buf, err := p.encoder.Encode(event)
	if err != nil {
		klog.Errorf("marshal %v error: %v", event, err)
		return
	}
	buf = append(buf, '\n')

	p.lock.Lock()
	defer p.lock.Unlock()

	// one retry on a fresh connection
	for i := 0; i < 2; i++ {
		if p.conn == nil && !p.loopDial() {
			return
		}
		if _, err := p.conn.Write(buf); err != nil {
			klog.Errorf("write to %s error: %v", p.config.Address, err)
			p.conn.Close()
			p.conn = nil
			continue
		}
		return
	}
}

func (p *TCPOutput) Shutdown() {
	p.once.Do(func() { close(p.stop) })

	p.lock.Lock()
	defer p.lock.Unlock()
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
