// sim/config.go
package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseProgram decodes a resolved-program YAML document and validates it.
//
// Example document:
//
//	qubits: 2
//	registers:
//	  - name: c
//	    width: 2
//	instructions:
//	  - op: u
//	    theta: 1.5707963267948966
//	    lambda: 3.141592653589793
//	    target: 0
//	  - op: cnot
//	    control: 0
//	    target: 1
//	  - op: measure
//	    target: 0
//	    register: c
//	    bit: 0
func ParseProgram(data []byte) (*Program, error) {
	var program Program
	if err := yaml.Unmarshal(data, &program); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	if err := program.Validate(); err != nil {
		return nil, fmt.Errorf("invalid program: %w", err)
	}
	return &program, nil
}

// LoadProgram reads and parses a resolved-program YAML file.
func LoadProgram(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	return ParseProgram(data)
}
