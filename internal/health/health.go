// Package health runs the self-test sequence behind --health-check.
package health

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"nmeafeed/internal/nmea"
)

// knownGood is a class A position report that must always decode.
const knownGood = "!BSVDM,1,1,,B,33mg@s0P@@Q@m58`2g;m:4Pb01q0,0*0B"

// Probe is one named check. Err is nil on success.
type Probe struct {
	Name string
	Err  error
}

// StorageProbe is the optional connectivity check supplied when an upload
// target is configured.
type StorageProbe func(ctx context.Context) error

// Run executes the probe sequence in order and returns every result. The
// sequence exercises the same decode entry point the pipeline uses, record
// serialization, buffer allocation, and identifier generation, plus storage
// when configured.
func Run(ctx context.Context, storage StorageProbe) []Probe {
	probes := []Probe{
		{Name: "decode", Err: probeDecode()},
		{Name: "serialize", Err: probeSerialize()},
		{Name: "buffer", Err: probeBuffer()},
		{Name: "identifier", Err: probeIdentifier()},
	}
	if storage != nil {
		probes = append(probes, Probe{Name: "storage", Err: storage(ctx)})
	}
	return probes
}

// Passed reports whether every probe succeeded.
func Passed(probes []Probe) bool {
	for _, p := range probes {
		if p.Err != nil {
			return false
		}
	}
	return true
}

func probeDecode() error {
	res := nmea.NewParser().Parse(knownGood)
	if res.Err != nil {
		return fmt.Errorf("known-good sentence failed to decode: %w", res.Err)
	}
	if res.ChecksumError != "" {
		return fmt.Errorf("known-good sentence checksum rejected: %s", res.ChecksumError)
	}
	if res.Message == nil {
		return fmt.Errorf("known-good sentence produced no message")
	}
	return nil
}

func probeSerialize() error {
	rec := nmea.Record{
		RawSentence: knownGood,
		Message:     nmea.NewParser().Parse(knownGood).Message,
	}
	b, err := rec.MarshalJSON()
	if err != nil {
		return fmt.Errorf("record serialization: %w", err)
	}
	if len(b) == 0 {
		return fmt.Errorf("record serialized to zero bytes")
	}
	return nil
}

func probeBuffer() error {
	buf := make([]byte, 1024*1024)
	for i := range buf {
		buf[i] = byte(i)
	}
	if buf[len(buf)-1] != byte(len(buf)-1) {
		return fmt.Errorf("buffer readback mismatch")
	}
	return nil
}

func probeIdentifier() error {
	id := uuid.NewString()
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("identifier generation: %w", err)
	}
	return nil
}
