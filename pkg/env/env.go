// Package env provides common setup shared by the log tools.
package env

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/robotalks/framlog.go/pkg/mirror/mqtt"
	"github.com/robotalks/framlog.go/pkg/store"
	"github.com/robotalks/framlog.go/pkg/store/i2cfram"
	"github.com/robotalks/framlog.go/pkg/store/mem"
)

// Config provides common options to set up the log store and mirror.
type Config struct {
	// I2CBus selects the I2C bus by name, empty for the first available.
	I2CBus string
	// I2CAddr is the FRAM device address on the bus.
	I2CAddr uint
	// Simulate replaces the hardware store with an in-memory one.
	Simulate bool
	// MirrorURL enables the MQTT mirror when non-empty.
	// e.g. mqtt://host:port/topic-prefix/
	MirrorURL string
}

var defaultConfig = Config{
	I2CAddr: uint(i2cfram.DefaultAddr),
}

func init() {
	if val := os.Getenv("FRAMLOG_I2C_BUS"); val != "" {
		defaultConfig.I2CBus = val
	}
	if val := os.Getenv("FRAMLOG_I2C_ADDR"); val != "" {
		if n, err := strconv.ParseUint(val, 0, 16); err == nil {
			defaultConfig.I2CAddr = uint(n)
		}
	}
	if val := os.Getenv("FRAMLOG_MQTT_URL"); val != "" {
		defaultConfig.MirrorURL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.I2CBus, "i2c", defaultConfig.I2CBus, "I2C bus name, empty for the first available.")
	flag.UintVar(&defaultConfig.I2CAddr, "addr", defaultConfig.I2CAddr, "FRAM device address on the bus.")
	flag.BoolVar(&defaultConfig.Simulate, "sim", defaultConfig.Simulate, "Use an in-memory store instead of hardware.")
	flag.StringVar(&defaultConfig.MirrorURL, "mqtt", defaultConfig.MirrorURL, "MQTT broker URL for the mirror, empty to disable.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewStore opens the configured byte store.
func (c *Config) NewStore() (store.Store, error) {
	if c.Simulate {
		return mem.New(i2cfram.DefaultCapacity), nil
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init failed: %v", err)
	}
	bus, err := i2creg.Open(c.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open I2C bus failed: %v", err)
	}
	return i2cfram.New(bus, uint16(c.I2CAddr)), nil
}

// MustNewStore opens the store and fails on error.
func (c *Config) MustNewStore() store.Store {
	s, err := c.NewStore()
	if err != nil {
		log.Fatalln(err)
	}
	return s
}

// NewMirrorQueue connects the MQTT mirror queue, nil when disabled.
func (c *Config) NewMirrorQueue() (*mqtt.Queue, error) {
	if c.MirrorURL == "" {
		return nil, nil
	}
	q, err := mqtt.NewQueueFromURL(c.MirrorURL)
	if err != nil {
		return nil, err
	}
	if err = q.Connect(); err != nil {
		return nil, err
	}
	return q, nil
}
