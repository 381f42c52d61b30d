package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a YAML seed profile. Zero fields leave the current value untouched.
//
//	clients: 500
//	agents: 60
//	policies: 1500
//	claims: 200
//	random_seed: 42
//	client_weights:
//	  VIP: 5
type Profile struct {
	Clients        int                `yaml:"clients"`
	Agents         int                `yaml:"agents"`
	Policies       int                `yaml:"policies"`
	Claims         int                `yaml:"claims"`
	Regions        int                `yaml:"regions"`
	BatchSize      int                `yaml:"batch_size"`
	ChildBatchSize int                `yaml:"child_batch_size"`
	RandomSeed     uint64             `yaml:"random_seed"`
	PasswordCost   int                `yaml:"password_cost"`
	ClientWeights  map[string]float64 `yaml:"client_weights"`
}

// LoadProfile reads a seed profile from a YAML file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a seed profile. Unknown keys are rejected.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// Apply overlays the non-zero profile fields on a SeedConfig.
func (p Profile) Apply(s SeedConfig) SeedConfig {
	if p.Clients > 0 {
		s = s.WithClients(p.Clients)
	}
	if p.Agents > 0 {
		s = s.WithAgents(p.Agents)
	}
	if p.Policies > 0 {
		s = s.WithPolicies(p.Policies)
	}
	if p.Claims > 0 {
		s = s.WithClaims(p.Claims)
	}
	if p.Regions > 0 {
		s = s.WithRegions(p.Regions)
	}
	if p.RandomSeed > 0 {
		s = s.WithRandomSeed(p.RandomSeed)
	}
	for name, w := range p.ClientWeights {
		s = s.WithClientWeight(name, w)
	}
	return s.
		WithBatchSize(p.BatchSize).
		WithChildBatchSize(p.ChildBatchSize).
		WithPasswordCost(p.PasswordCost)
}
