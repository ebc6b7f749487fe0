/*
   CPU: definitions for the gold CPU.

   Copyright (c) 2024, Richard Cornwell

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package cpu

import (
	"github.com/ababoin07/goldOS/emu/memory"
)

// Number of registers. Register 15 is the accumulator, it receives
// the result of every arithmetic, bitwise and comparison instruction
// and can not be named as an explicit destination.
const (
	numRegs = 16
	accReg  = 15
	maxDest = 14
)

// Trap reports why the CPU stopped. Traps are fatal to the run, the
// CPU halts with the PC still addressing the faulting instruction.
type Trap uint16

const (
	TrapNone      Trap = iota // Not a trap, keep running.
	TrapBounds                // Memory access escaped the store.
	TrapReserved              // Opcode 0x0000.
	TrapUnknown               // Opcode not in the instruction set.
	TrapDivZero               // DIV with zero divisor.
	TrapUnderflow             // POP or RET on an empty stack.
	TrapOverflow              // PSH or CALL across the stack floor.
	TrapBudget                // Step budget ran out before a halt.
)

var trapNames = map[Trap]string{
	TrapNone:      "none",
	TrapBounds:    "memory access out of bounds",
	TrapReserved:  "reserved opcode",
	TrapUnknown:   "unknown opcode",
	TrapDivZero:   "divide by zero",
	TrapUnderflow: "stack underflow",
	TrapOverflow:  "stack overflow",
	TrapBudget:    "step budget exhausted",
}

func (t Trap) String() string {
	name, ok := trapNames[t]
	if !ok {
		return "invalid trap"
	}
	return name
}

func (t Trap) Error() string {
	return t.String()
}

// CPU holds the full execution state: the sixteen registers, the
// program counter, the stack pointer and the halt condition. The
// stack pointer is not part of the register file.
type CPU struct {
	regs   [numRegs]uint32
	pc     uint32
	sp     uint32
	limit  uint32 // Empty stack SP, pops past it underflow.
	floor  uint32 // Pushes below it overflow.
	mem    *memory.Memory
	halted bool
	trap   Trap
	steps  uint64
	trace  bool
}

// Decoded instruction being executed.
type stepInfo struct {
	opcode uint16
	opA    uint32
	opB    uint32
	nextPC uint32
}

// New creates a CPU over mem with the given initial program counter
// and stack pointer. The stack grows downward from the initial SP,
// the floor defaults to address zero.
func New(mem *memory.Memory, pc, sp uint32) *CPU {
	return &CPU{mem: mem, pc: pc, sp: sp, limit: sp}
}

// Reset returns the CPU to its construction state with a new initial
// PC and SP. Registers clear, the stack empties, any trap is dropped.
func (cpu *CPU) Reset(pc, sp uint32) {
	for i := range numRegs {
		cpu.regs[i] = 0
	}
	cpu.pc = pc
	cpu.sp = sp
	cpu.limit = sp
	cpu.halted = false
	cpu.trap = TrapNone
	cpu.steps = 0
}

// SetStackFloor reserves memory below addr from the stack. A push
// that would cross the floor traps instead of overwriting code.
func (cpu *CPU) SetStackFloor(addr uint32) {
	cpu.floor = addr
}

// SetTrace turns per instruction debug logging on or off.
func (cpu *CPU) SetTrace(on bool) {
	cpu.trace = on
}

// Return CPU PC.
func (cpu *CPU) PC() uint32 {
	return cpu.pc
}

// Return CPU SP.
func (cpu *CPU) SP() uint32 {
	return cpu.sp
}

// Register returns the value of register reg, 0 through 15.
func (cpu *CPU) Register(reg int) uint32 {
	return cpu.regs[reg&0xf]
}

// SetRegister deposits a value into a general register from the host.
// The accumulator write protection still applies.
func (cpu *CPU) SetRegister(reg int, value uint32) {
	cpu.setReg(uint32(reg), value)
}

// Steps returns the number of retired instructions.
func (cpu *CPU) Steps() uint64 {
	return cpu.steps
}

// Halted reports whether the CPU took a trap.
func (cpu *CPU) Halted() bool {
	return cpu.halted
}

// LastTrap returns the trap that halted the CPU, TrapNone if running.
func (cpu *CPU) LastTrap() Trap {
	return cpu.trap
}
