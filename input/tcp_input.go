package input

import (
	"bufio"
	"net"
	"sync"

	"github.com/childe/omitter/codec"
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

// TCPConfig defines the configuration structure for TCP input
type TCPConfig struct {
	Address string `mapstructure:"address"`
	Codec   string `mapstructure:"codec"`
}

// TCPInput accepts connections and reads one event per line from each of them.
type TCPInput struct {
	config  map[any]any
	decoder codec.Decoder

	l        net.Listener
	messages chan []byte

	mu    sync.Mutex
	conns map[net.Conn]struct{}

	once sync.Once
	stop chan struct{}
}

func init() {
	Register("TCP", newTCPInput)
}

func newTCPInput(config map[any]any) topology.Input {
	return NewTCPInput(config)
}

func NewTCPInput(config map[any]any) *TCPInput {
	var tcpConfig TCPConfig
	SafeDecodeConfig("TCP", config, &tcpConfig)
	if tcpConfig.Address == "" {
		klog.Fatal("TCP input: 'address' is required")
	}

	decoder, err := codec.NewDecoder(tcpConfig.Codec)
	if err != nil {
		klog.Fatalf("TCP input: %v", err)
	}

	l, err := net.Listen("tcp", tcpConfig.Address)
	if err != nil {
		klog.Fatalf("TCP input: %v", err)
	}

	p := &TCPInput{
		config:   config,
		decoder:  decoder,
		l:        l,
		messages: make(chan []byte, 10),
		conns:    make(map[net.Conn]struct{}),
		stop:     make(chan struct{}),
	}

	go func() {
		for {
			conn, err := l.Accept()
			if err != nil {
				select {
				case <-p.stop:
					return
				default:
				}
				klog.Errorf("TCP input accept error: %v", err)
				continue
			}
			if !p.track(conn) {
				return
			}
			go p.readLine(conn)
		}
	}()
	return p
}

// track registers conn so Shutdown can close it, or closes conn if the input
// is already shutting down.
func (p *TCPInput) track(conn net.Conn) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	select {
	case <-p.stop:
		conn.Close()
		return false
	default:
	}
	p.conns[conn] = struct{}{}
	return true
}

// Addr is the address the input listens on.
func (p *TCPInput) Addr() net.Addr {
	return p.l.Addr()
}

func (p *TCPInput) readLine(c net.Conn) {
	defer func() {
		c.Close()
		p.mu.Lock()
		delete(p.conns, c)
		p.mu.Unlock()
	}()

	scanner := bufio.NewScanner(c)
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		select {
		case p.messages <- line:
		case <-p.stop:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		klog.Errorf("read from %s->%s error: %v", c.RemoteAddr(), c.LocalAddr(), err)
	}
}

func (p *TCPInput) ReadOneEvent() map[string]any {
	select {
	case text := <-p.messages:
		return p.decoder.Decode(text)
	case <-p.stop:
		return nil
	}
}

func (p *TCPInput) Shutdown() {
	p.once.Do(func() {
		close(p.stop)
		p.l.Close()

		p.mu.Lock()
		defer p.mu.Unlock()
		for c := range p.conns {
			c.Close()
		}
	})
}
