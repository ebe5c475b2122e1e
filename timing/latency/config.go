package latency

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
)

// MaxStage is the latest stage a result may become available in. The hazard
// tracker keeps eight in-flight entries, so a result must be visible within
// seven issue slots of its producer.
const MaxStage = 7

// TimingConfig holds the pipeline stage conventions used by the hazard
// model. Stages count from issue: a value produced at stage N by one
// instruction can be consumed without stalling by an instruction that
// reads it at stage N or later, N issue slots behind.
type TimingConfig struct {
	// ALUReadStage is the stage at which ALU, branch, jump-register,
	// address-base and trap operands are read. Default: 3.
	ALUReadStage uint64 `json:"alu_read_stage"`

	// StoreDataReadStage is the stage at which a store reads the value it
	// writes to memory. Default: 4.
	StoreDataReadStage uint64 `json:"store_data_read_stage"`

	// ALUResultStage is the stage at which ALU, lui, jal-link and read_int
	// results become available. Default: 4.
	ALUResultStage uint64 `json:"alu_result_stage"`

	// LoadResultStage is the stage at which a loaded word becomes
	// available. Default: 6.
	LoadResultStage uint64 `json:"load_result_stage"`

	// MulDivResultStage is the stage at which HI/LO become available after
	// mult or div. Default: 7.
	MulDivResultStage uint64 `json:"muldiv_result_stage"`

	// FlushPenalty is the number of cycles lost on every control transfer.
	// Default: 2.
	FlushPenalty uint64 `json:"flush_penalty"`

	// PipelineFill is the fixed fill/drain overhead added once per run.
	// Default: 7.
	PipelineFill uint64 `json:"pipeline_fill"`

	// ClockFreq converts estimated cycles to time. Default: 1 GHz.
	ClockFreq sim.Freq `json:"clock_freq_hz"`
}

// DefaultTimingConfig returns a TimingConfig with the classic 5-stage
// forwarding conventions extended for long-latency multiply/divide.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		ALUReadStage:       3,
		StoreDataReadStage: 4,
		ALUResultStage:     4,
		LoadResultStage:    6,
		MulDivResultStage:  7,
		FlushPenalty:       2,
		PipelineFill:       7,
		ClockFreq:          1 * sim.GHz,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields absent from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that every stage is in 1..MaxStage and the clock
// frequency is positive.
func (c *TimingConfig) Validate() error {
	stages := []struct {
		name  string
		value uint64
	}{
		{"alu_read_stage", c.ALUReadStage},
		{"store_data_read_stage", c.StoreDataReadStage},
		{"alu_result_stage", c.ALUResultStage},
		{"load_result_stage", c.LoadResultStage},
		{"muldiv_result_stage", c.MulDivResultStage},
	}
	for _, s := range stages {
		if s.value == 0 || s.value > MaxStage {
			return fmt.Errorf("%s must be in 1..%d, got %d", s.name, MaxStage, s.value)
		}
	}
	if c.ClockFreq <= 0 {
		return fmt.Errorf("clock_freq_hz must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}

// Seconds converts a cycle count to seconds at ClockFreq.
func (c *TimingConfig) Seconds(cycles uint64) float64 {
	if c.ClockFreq <= 0 {
		return 0
	}
	return float64(cycles) / float64(c.ClockFreq)
}
