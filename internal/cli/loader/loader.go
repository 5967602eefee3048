package loader

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// WorkspaceFile is a workspace definition loaded from a YAML file, for
// `ragctl create -f`.
type WorkspaceFile struct {
	// Kind must be "Workspace"
	Kind string `yaml:"kind"`
	// Spec contains the workspace specification
	Spec WorkspaceSpec `yaml:"spec"`
}

// WorkspaceSpec defines the workspace to create. Only the display name is
// sent to the backend; id and slug are server-assigned.
type WorkspaceSpec struct {
	Name string `yaml:"name"`
}

// LoadFromFile loads a workspace definition from a YAML file.
func LoadFromFile(filepath string) (*WorkspaceFile, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var wf WorkspaceFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if wf.Kind != "Workspace" {
		return nil, fmt.Errorf("unsupported kind %q, expected \"Workspace\"", wf.Kind)
	}
	if wf.Spec.Name == "" {
		return nil, fmt.Errorf("spec.name is required")
	}

	return &wf, nil
}
