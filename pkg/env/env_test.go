package env

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/framlog.go/pkg/store/i2cfram"
	"github.com/robotalks/framlog.go/pkg/store/mem"
)

func TestNewConfigCopies(t *testing.T) {
	conf := NewConfig()
	conf.I2CBus = "i2c-9"
	conf.Simulate = true
	require.NotEqual(t, Default().I2CBus, conf.I2CBus)
	require.False(t, Default().Simulate)
}

func TestDefaultAddr(t *testing.T) {
	require.Equal(t, uint(i2cfram.DefaultAddr), NewConfig().I2CAddr)
}

func TestSimulatedStore(t *testing.T) {
	conf := NewConfig()
	conf.Simulate = true
	s, err := conf.NewStore()
	require.NoError(t, err)
	require.IsType(t, &mem.Store{}, s)
	require.Equal(t, i2cfram.DefaultCapacity, s.Capacity())
}

func TestNoMirrorByDefault(t *testing.T) {
	q, err := NewConfig().NewMirrorQueue()
	require.NoError(t, err)
	require.Nil(t, q)
}

func TestMirrorBadURL(t *testing.T) {
	conf := NewConfig()
	conf.MirrorURL = "://bad"
	_, err := conf.NewMirrorQueue()
	require.Error(t, err)
}

func TestMachineID(t *testing.T) {
	require.NotEmpty(t, MachineID())
}
