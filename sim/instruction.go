// sim/instruction.go
package sim

import "fmt"

// OpCode names one resolved circuit operation.
type OpCode string

const (
	// OpUnitary applies the general single-qubit rotation U(theta, phi, lambda).
	OpUnitary OpCode = "u"
	// OpCNot applies a controlled-not.
	OpCNot OpCode = "cnot"
	// OpMeasure collapses one qubit into a classical register bit.
	OpMeasure OpCode = "measure"
)

// Instruction is one fully resolved step of a circuit. Qubit indices are
// absolute positions in the flattened quantum address space; name and range
// resolution happen upstream, in the frontend this engine does not include.
type Instruction struct {
	Op OpCode `yaml:"op"`

	// Rotation angles, OpUnitary only.
	Theta  float64 `yaml:"theta,omitempty"`
	Phi    float64 `yaml:"phi,omitempty"`
	Lambda float64 `yaml:"lambda,omitempty"`

	// Control qubit, OpCNot only.
	Control int `yaml:"control,omitempty"`

	// Target qubit operand.
	Target int `yaml:"target"`

	// Classical destination, OpMeasure only: bit Bit of register Register.
	Register string `yaml:"register,omitempty"`
	Bit      int    `yaml:"bit,omitempty"`

	// Conditional guard: when Conditional is true, the instruction executes
	// only while classical register Guard equals GuardValue.
	Conditional bool   `yaml:"conditional,omitempty"`
	Guard       string `yaml:"guard,omitempty"`
	GuardValue  uint64 `yaml:"guard_value,omitempty"`
}

// RegisterDecl declares one classical register. Order defaults to the
// position in the declaration list; later-declared registers lead the
// joint-outcome bitstring.
type RegisterDecl struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
	Order int    `yaml:"order,omitempty"`
}

// Program is a resolved instruction stream plus its register context, the
// unit of work a Runner executes.
type Program struct {
	QubitWidth   int            `yaml:"qubits"`
	Registers    []RegisterDecl `yaml:"registers"`
	Instructions []Instruction  `yaml:"instructions"`
}

// Validate checks the program's well-formedness at the boundary: qubit and
// bit operands in range, measure and guard targets referring to declared
// registers. The engine itself assumes a validated program and treats
// violations as fatal contract errors.
func (p *Program) Validate() error {
	if p.QubitWidth <= 0 {
		return fmt.Errorf("program declares %d qubits, need at least 1", p.QubitWidth)
	}
	widths := make(map[string]int, len(p.Registers))
	for i, reg := range p.Registers {
		if reg.Name == "" {
			return fmt.Errorf("register %d has no name", i)
		}
		if reg.Width <= 0 {
			return fmt.Errorf("register %q declares width %d, need at least 1", reg.Name, reg.Width)
		}
		if _, dup := widths[reg.Name]; dup {
			return fmt.Errorf("register %q declared twice", reg.Name)
		}
		widths[reg.Name] = reg.Width
	}
	for i, inst := range p.Instructions {
		if err := p.validateInstruction(&inst, widths); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	return nil
}

func (p *Program) validateInstruction(inst *Instruction, widths map[string]int) error {
	if inst.Target < 0 || inst.Target >= p.QubitWidth {
		return fmt.Errorf("target qubit %d out of range [0, %d)", inst.Target, p.QubitWidth)
	}
	switch inst.Op {
	case OpUnitary:
	case OpCNot:
		if inst.Control < 0 || inst.Control >= p.QubitWidth {
			return fmt.Errorf("control qubit %d out of range [0, %d)", inst.Control, p.QubitWidth)
		}
		if inst.Control == inst.Target {
			return fmt.Errorf("cnot control and target are both qubit %d", inst.Target)
		}
	case OpMeasure:
		width, ok := widths[inst.Register]
		if !ok {
			return fmt.Errorf("measure into undeclared register %q", inst.Register)
		}
		if inst.Bit < 0 || inst.Bit >= width {
			return fmt.Errorf("measure into bit %d of %d-bit register %q", inst.Bit, width, inst.Register)
		}
	default:
		return fmt.Errorf("unknown op %q", inst.Op)
	}
	if inst.Conditional {
		if _, ok := widths[inst.Guard]; !ok {
			return fmt.Errorf("guard on undeclared register %q", inst.Guard)
		}
	}
	return nil
}

// newMemory builds the zeroed classical memory the program declares.
func (p *Program) newMemory() ClassicalMemory {
	memory := make(ClassicalMemory, len(p.Registers))
	for i, reg := range p.Registers {
		order := reg.Order
		if order == 0 {
			order = i + 1
		}
		memory[reg.Name] = RegisterOutcome{Width: reg.Width, Order: order}
	}
	return memory
}
