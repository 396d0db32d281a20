package id_gen

import (
	"os"
	"strconv"
	"strings"
	"time"

	"our_culture/be/biz/util/ip"

	"github.com/bytedance/gopkg/lang/fastrand"
)

var idgen = NewIDGenerator(64)

// NewID returns a log id: millis(base36) + host ip(hex) + pid + random(base36).
func NewID() string {
	return idgen.NewID()
}

// IDGenerator pre-builds ids in a background goroutine so the request path
// only does a channel receive.
type IDGenerator struct {
	pool <-chan string
	stop chan struct{}
}

func NewIDGenerator(maxSize int) *IDGenerator {
	stop := make(chan struct{})
	return &IDGenerator{
		pool: newPool(maxSize, stop),
		stop: stop,
	}
}

func (g *IDGenerator) Stop() {
	select {
	case <-g.stop:
	default:
		close(g.stop)
	}
}

func (g *IDGenerator) NewID() string {
	select {
	case id := <-g.pool:
		return id
	case <-g.stop:
		return buildID()
	}
}

func newPool(size int, stop chan struct{}) <-chan string {
	pool := make(chan string, size)

	go func() {
		for {
			id := buildID()
			select {
			case <-stop:
				return
			case pool <- id:
			}
		}
	}()

	return pool
}

var pid = strconv.FormatUint(uint64(os.Getpid()), 10)

func buildID() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(time.Now().UnixMilli()), 36))
	sb.WriteString(ip.IPv4Hex())
	sb.WriteString(pid)
	sb.WriteString(strconv.FormatUint(fastrand.Uint64(), 36))
	return sb.String()
}
