/*
 * goldOS - Instruction disassembler.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package disassemble

import (
	"encoding/binary"
	"fmt"

	op "github.com/ababoin07/goldOS/emu/opcodemap"
)

// Operand rendering per instruction type.
const (
	tyNone     = 1 + iota // No operands.
	tyMemReg              // LD: address, destination register.
	tyConstReg            // LC: constant, destination register.
	tyRegMem              // DR: source register, address.
	tyRegReg              // CPY, ALU, comparisons: two registers.
	tyReg                 // NOT, PSH, POP: one register.
	tyAddr                // JMP, CALL: absolute address.
	tyRel                 // JMR, MOVSP: signed offset.
	tyRegAddr             // CMP: predicate register, absolute address.
	tyRegRel              // CMR: predicate register, signed offset.
)

type opcode struct {
	opName string // Opcode string.
	opType int    // Operand rendering.
}

var opMap = map[uint16]opcode{
	op.OpLD:    {"LD", tyMemReg},
	op.OpLC:    {"LC", tyConstReg},
	op.OpDR:    {"DR", tyRegMem},
	op.OpCPY:   {"CPY", tyRegReg},
	op.OpOR:    {"OR", tyRegReg},
	op.OpAND:   {"AND", tyRegReg},
	op.OpXOR:   {"XOR", tyRegReg},
	op.OpNAND:  {"NAND", tyRegReg},
	op.OpNOR:   {"NOR", tyRegReg},
	op.OpNOT:   {"NOT", tyReg},
	op.OpADD:   {"ADD", tyRegReg},
	op.OpSUB:   {"SUB", tyRegReg},
	op.OpMUL:   {"MUL", tyRegReg},
	op.OpDIV:   {"DIV", tyRegReg},
	op.OpEXP:   {"EXP", tyRegReg},
	op.OpJMP:   {"JMP", tyAddr},
	op.OpJMR:   {"JMR", tyRel},
	op.OpCMP:   {"CMP", tyRegAddr},
	op.OpCMR:   {"CMR", tyRegRel},
	op.OpPSH:   {"PSH", tyReg},
	op.OpPOP:   {"POP", tyReg},
	op.OpMOVSP: {"MOVSP", tyRel},
	op.OpCALL:  {"CALL", tyAddr},
	op.OpRET:   {"RET", tyNone},
	op.OpGT:    {"GT", tyRegReg},
	op.OpLT:    {"LT", tyRegReg},
	op.OpEQ:    {"EQ", tyRegReg},
	op.OpNE:    {"NE", tyRegReg},
	op.OpGE:    {"GE", tyRegReg},
	op.OpLE:    {"LE", tyRegReg},
	op.OpLDI:   {"LDI", tyRegReg},
	op.OpSTI:   {"STI", tyRegReg},
}

// Render a register operand from its low byte.
func regName(operand uint32) string {
	return fmt.Sprintf("R%d", operand&0xff)
}

// Render a signed branch or stack offset.
func offset(operand uint32) string {
	if operand&0x80000000 != 0 {
		return fmt.Sprintf("-%d", -operand)
	}
	return fmt.Sprintf("+%d", operand)
}

// Disassemble one ten byte instruction into symbolic form.
func Disassemble(inst []byte) (string, error) {
	if len(inst) < op.InstLen {
		return "", fmt.Errorf("short instruction: %d bytes", len(inst))
	}
	opr := binary.BigEndian.Uint16(inst[0:2])
	opA := binary.BigEndian.Uint32(inst[2:6])
	opB := binary.BigEndian.Uint32(inst[6:10])

	code, ok := opMap[opr]
	if !ok {
		return "", fmt.Errorf("undefined opcode: %04x", opr)
	}

	switch code.opType {
	case tyNone:
		return code.opName, nil
	case tyMemReg:
		return fmt.Sprintf("%s 0x%08x,%s", code.opName, opA, regName(opB)), nil
	case tyConstReg:
		return fmt.Sprintf("%s #%d,%s", code.opName, opA, regName(opB)), nil
	case tyRegMem:
		return fmt.Sprintf("%s %s,0x%08x", code.opName, regName(opA), opB), nil
	case tyRegReg:
		return fmt.Sprintf("%s %s,%s", code.opName, regName(opA), regName(opB)), nil
	case tyReg:
		return fmt.Sprintf("%s %s", code.opName, regName(opA)), nil
	case tyAddr:
		return fmt.Sprintf("%s 0x%08x", code.opName, opA), nil
	case tyRel:
		return fmt.Sprintf("%s %s", code.opName, offset(opA)), nil
	case tyRegAddr:
		return fmt.Sprintf("%s %s,0x%08x", code.opName, regName(opA), opB), nil
	case tyRegRel:
		return fmt.Sprintf("%s %s,%s", code.opName, regName(opA), offset(opB)), nil
	}
	return "", fmt.Errorf("undefined opcode type: %d", code.opType)
}
