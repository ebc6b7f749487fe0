package opcodemap

/*
 * goldOS - Opcode numbers for the gold instruction set
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

// Every instruction is exactly ten bytes: a 16 bit opcode followed by
// two 32 bit operands, all big endian. Opcode 0x0000 never appears in
// a correct program so that uninitialized memory can not execute.
const InstLen = 10

const (
	// Opcode definitions.
	OpLD    = 0x0001 // dest = reg(B), src = mem(A)
	OpLC    = 0x0002 // dest = reg(B), src = A
	OpDR    = 0x0003 // dest = mem(B), src = reg(A)
	OpCPY   = 0x0004 // dest = reg(B), src = reg(A)
	OpOR    = 0x0005 // acc = reg(A) | reg(B)
	OpAND   = 0x0006 // acc = reg(A) & reg(B)
	OpXOR   = 0x0007 // acc = reg(A) ^ reg(B)
	OpNAND  = 0x0008 // acc = ^(reg(A) & reg(B))
	OpNOR   = 0x0009 // acc = ^(reg(A) | reg(B))
	OpNOT   = 0x000a // acc = ^reg(A)
	OpADD   = 0x000b // acc = reg(A) + reg(B)
	OpSUB   = 0x000c // acc = reg(A) - reg(B)
	OpMUL   = 0x000d // acc = reg(A) * reg(B)
	OpDIV   = 0x000e // acc = reg(A) / reg(B), reg(B) zero traps
	OpEXP   = 0x000f // acc = reg(A) ** reg(B)
	OpJMP   = 0x0020 // pc = A
	OpJMR   = 0x0021 // pc += A, signed
	OpCMP   = 0x0022 // pc = B if reg(A) nonzero
	OpCMR   = 0x0023 // pc += B, signed, if reg(A) nonzero
	OpPSH   = 0x0030 // push reg(A)
	OpPOP   = 0x0031 // reg(A) = pop
	OpMOVSP = 0x0032 // sp += A, signed
	OpCALL  = 0x0033 // push return, pc = A
	OpRET   = 0x0034 // pc = pop
	OpGT    = 0x0040 // acc = all ones if reg(A) > reg(B), unsigned
	OpLT    = 0x0041 // acc = all ones if reg(A) < reg(B)
	OpEQ    = 0x0042 // acc = all ones if reg(A) == reg(B)
	OpNE    = 0x0043 // acc = all ones if reg(A) != reg(B)
	OpGE    = 0x0044 // acc = all ones if reg(A) >= reg(B)
	OpLE    = 0x0045 // acc = all ones if reg(A) <= reg(B)
	OpLDI   = 0x0050 // dest = reg(B), src = mem(reg(A))
	OpSTI   = 0x0051 // dest = mem(reg(B)), src = reg(A)
)
