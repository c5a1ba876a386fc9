package config

import (
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
)

func TestDecodeStringToMap(t *testing.T) {
	type target struct {
		Labels map[string]string `mapstructure:"labels"`
	}

	var out target
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: CompositeDecodeHook(),
		Result:     &out,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := dec.Decode(map[string]any{"labels": "a=1, b = 2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Labels["a"] != "1" || out.Labels["b"] != "2" {
		t.Errorf("unexpected map: %v", out.Labels)
	}
}

func TestDecodeStringToMapInvalid(t *testing.T) {
	type target struct {
		Labels map[string]string `mapstructure:"labels"`
	}

	var out target
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: CompositeDecodeHook(),
		Result:     &out,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := dec.Decode(map[string]any{"labels": "no-separator"}); err == nil {
		t.Fatal("expected error for pair without separator")
	}
}

func TestDecodeDuration(t *testing.T) {
	type target struct {
		Timeout time.Duration `mapstructure:"timeout"`
	}

	var out target
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: CompositeDecodeHook(),
		Result:     &out,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := dec.Decode(map[string]any{"timeout": "2s"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Timeout != 2*time.Second {
		t.Errorf("unexpected duration: %v", out.Timeout)
	}
}
