/*
   CPU: main CPU instruction fetch and execute.

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
	"encoding/binary"
	"fmt"
	"log/slog"

	dis "github.com/ababoin07/goldOS/emu/disassemble"
	op "github.com/ababoin07/goldOS/emu/opcodemap"
)

/*
   The gold CPU is a 32 bit big endian machine. Sixteen 32 bit
   registers, register 15 is the accumulator. A program counter and a
   stack pointer live outside the register file. Every instruction is
   ten bytes:

      +----+----+----+----+----+----+----+----+----+----+
      | opcode  |      operand A    |      operand B    |
      +----+----+----+----+----+----+----+----+----+----+

   Operands are full 32 bit values. When an operand names a register
   only its low byte is used. A destination byte above 14 is clamped
   to 14, the accumulator can only be written by instruction results.
   A source byte of exactly 15 reads the accumulator, larger values
   clamp to 14.

   Arithmetic wraps modulo 2**32. JMR, CMR and MOVSP treat their
   operand as a two's complement offset, which on the unsigned
   substrate is just a wrapping add.
*/

// Read a register named by the low byte of an operand.
func (cpu *CPU) getReg(operand uint32) uint32 {
	r := operand & 0xff
	if r > maxDest && r != accReg {
		r = maxDest
	}
	return cpu.regs[r]
}

// Write a register named by the low byte of an operand. A destination
// of 15 is remapped to 14, the accumulator is not a valid target.
func (cpu *CPU) setReg(operand, value uint32) {
	r := operand & 0xff
	if r > maxDest {
		r = maxDest
	}
	cpu.regs[r] = value
}

// Write the accumulator. Only instruction result writeback comes here.
func (cpu *CPU) setAcc(value uint32) {
	cpu.regs[accReg] = value
}

// Push a word, stack grows down. The stack pointer moves only when
// the write succeeded so a trap leaves the stack untouched.
func (cpu *CPU) push(value uint32) Trap {
	if cpu.sp < 4 || cpu.sp-4 < cpu.floor {
		return TrapOverflow
	}
	if cpu.mem.PutWord(cpu.sp-4, value) {
		return TrapBounds
	}
	cpu.sp -= 4
	return TrapNone
}

// Pop a word, stack shrinks up toward the empty stack mark.
func (cpu *CPU) pop() (uint32, Trap) {
	if cpu.sp > cpu.limit || cpu.limit-cpu.sp < 4 {
		return 0, TrapUnderflow
	}
	value, fault := cpu.mem.GetWord(cpu.sp)
	if fault {
		return 0, TrapBounds
	}
	cpu.sp += 4
	return value, TrapNone
}

// Integer power with unsigned wrap. Anything to the zero is one,
// including zero itself.
func powWrap(base, exp uint32) uint32 {
	result := uint32(1)
	for exp != 0 {
		if exp&1 != 0 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// All ones for true, zero for false.
func condValue(cond bool) uint32 {
	if cond {
		return 0xffffffff
	}
	return 0
}

// Execute one instruction. Returns TrapNone while the program can
// continue. On a trap the CPU halts with the PC still addressing the
// faulting instruction.
func (cpu *CPU) Step() Trap {
	if cpu.halted {
		return cpu.trap
	}

	// Fetch the next instruction.
	inst, fault := cpu.mem.ReadBytes(cpu.pc, op.InstLen)
	if fault {
		return cpu.fault(TrapBounds)
	}

	step := stepInfo{
		opcode: binary.BigEndian.Uint16(inst[0:2]),
		opA:    binary.BigEndian.Uint32(inst[2:6]),
		opB:    binary.BigEndian.Uint32(inst[6:10]),
		nextPC: cpu.pc + op.InstLen,
	}

	if cpu.trace {
		symbolic, err := dis.Disassemble(inst)
		if err != nil {
			symbolic = fmt.Sprintf("%04x", step.opcode)
		}
		slog.Debug(fmt.Sprintf("%08x: % x  %s", cpu.pc, inst, symbolic))
	}

	if trap := cpu.execute(&step); trap != TrapNone {
		return cpu.fault(trap)
	}

	cpu.pc = step.nextPC
	cpu.steps++
	return TrapNone
}

// Record a trap and halt.
func (cpu *CPU) fault(trap Trap) Trap {
	cpu.halted = true
	cpu.trap = trap
	return trap
}

// Execute the decoded instruction, updating registers, memory and the
// tentative next PC. Result producing opcodes write the accumulator.
func (cpu *CPU) execute(step *stepInfo) Trap {
	switch step.opcode {
	case 0x0000:
		// Reserved so uninitialized memory can not execute.
		return TrapReserved

	case op.OpLD:
		value, fault := cpu.mem.GetWord(step.opA)
		if fault {
			return TrapBounds
		}
		cpu.setReg(step.opB, value)

	case op.OpLC:
		cpu.setReg(step.opB, step.opA)

	case op.OpDR:
		if cpu.mem.PutWord(step.opB, cpu.getReg(step.opA)) {
			return TrapBounds
		}

	case op.OpCPY:
		cpu.setReg(step.opB, cpu.getReg(step.opA))

	case op.OpOR:
		cpu.setAcc(cpu.getReg(step.opA) | cpu.getReg(step.opB))

	case op.OpAND:
		cpu.setAcc(cpu.getReg(step.opA) & cpu.getReg(step.opB))

	case op.OpXOR:
		cpu.setAcc(cpu.getReg(step.opA) ^ cpu.getReg(step.opB))

	case op.OpNAND:
		cpu.setAcc(^(cpu.getReg(step.opA) & cpu.getReg(step.opB)))

	case op.OpNOR:
		cpu.setAcc(^(cpu.getReg(step.opA) | cpu.getReg(step.opB)))

	case op.OpNOT:
		cpu.setAcc(^cpu.getReg(step.opA))

	case op.OpADD:
		cpu.setAcc(cpu.getReg(step.opA) + cpu.getReg(step.opB))

	case op.OpSUB:
		cpu.setAcc(cpu.getReg(step.opA) - cpu.getReg(step.opB))

	case op.OpMUL:
		cpu.setAcc(cpu.getReg(step.opA) * cpu.getReg(step.opB))

	case op.OpDIV:
		divisor := cpu.getReg(step.opB)
		if divisor == 0 {
			return TrapDivZero
		}
		cpu.setAcc(cpu.getReg(step.opA) / divisor)

	case op.OpEXP:
		cpu.setAcc(powWrap(cpu.getReg(step.opA), cpu.getReg(step.opB)))

	case op.OpJMP:
		step.nextPC = step.opA

	case op.OpJMR:
		// Two's complement offset, wrapping add.
		step.nextPC = cpu.pc + step.opA

	case op.OpCMP:
		if cpu.getReg(step.opA) != 0 {
			step.nextPC = step.opB
		}

	case op.OpCMR:
		if cpu.getReg(step.opA) != 0 {
			step.nextPC = cpu.pc + step.opB
		}

	case op.OpPSH:
		return cpu.push(cpu.getReg(step.opA))

	case op.OpPOP:
		value, trap := cpu.pop()
		if trap != TrapNone {
			return trap
		}
		cpu.setReg(step.opA, value)

	case op.OpMOVSP:
		cpu.sp += step.opA

	case op.OpCALL:
		// Return address is the instruction after the CALL.
		if trap := cpu.push(step.nextPC); trap != TrapNone {
			return trap
		}
		step.nextPC = step.opA

	case op.OpRET:
		value, trap := cpu.pop()
		if trap != TrapNone {
			return trap
		}
		step.nextPC = value

	case op.OpGT:
		cpu.setAcc(condValue(cpu.getReg(step.opA) > cpu.getReg(step.opB)))

	case op.OpLT:
		cpu.setAcc(condValue(cpu.getReg(step.opA) < cpu.getReg(step.opB)))

	case op.OpEQ:
		cpu.setAcc(condValue(cpu.getReg(step.opA) == cpu.getReg(step.opB)))

	case op.OpNE:
		cpu.setAcc(condValue(cpu.getReg(step.opA) != cpu.getReg(step.opB)))

	case op.OpGE:
		cpu.setAcc(condValue(cpu.getReg(step.opA) >= cpu.getReg(step.opB)))

	case op.OpLE:
		cpu.setAcc(condValue(cpu.getReg(step.opA) <= cpu.getReg(step.opB)))

	case op.OpLDI:
		value, fault := cpu.mem.GetWord(cpu.getReg(step.opA))
		if fault {
			return TrapBounds
		}
		cpu.setReg(step.opB, value)

	case op.OpSTI:
		if cpu.mem.PutWord(cpu.getReg(step.opB), cpu.getReg(step.opA)) {
			return TrapBounds
		}

	default:
		return TrapUnknown
	}
	return TrapNone
}
