package chip8

import "fmt"

// execute decodes and executes a single opcode. It returns an
// error on a machine fault: an opcode outside the instruction
// set, call stack exhaustion, or a memory access outside RAM.
func (c *Chip8) execute(op uint16) error {
	x := uint8(op >> 8 & 0x0F)
	y := uint8(op >> 4 & 0x0F)
	n := uint8(op & 0x000F)
	nn := uint8(op & 0x00FF)
	nnn := op & 0x0FFF

	switch op >> 12 {
	case 0x0:
		switch op {
		case 0x00E0: // CLS
			for i := range c.display {
				c.display[i] = 0
			}
		case 0x00EE: // RET
			if c.sp == 0 {
				return fmt.Errorf("chip8: return with empty call stack at 0x%04X", c.pc-2)
			}
			c.sp--
			c.pc = c.stack[c.sp]
		default:
			// SYS addr, ignored on modern interpreters
		}
	case 0x1: // JP addr
		c.pc = nnn
	case 0x2: // CALL addr
		if int(c.sp) >= len(c.stack) {
			return fmt.Errorf("chip8: call stack overflow at 0x%04X", c.pc-2)
		}
		c.stack[c.sp] = c.pc
		c.sp++
		c.pc = nnn
	case 0x3: // SE Vx, byte
		if c.v[x] == nn {
			c.pc += 2
		}
	case 0x4: // SNE Vx, byte
		if c.v[x] != nn {
			c.pc += 2
		}
	case 0x5: // SE Vx, Vy
		if n != 0 {
			return c.illegal(op)
		}
		if c.v[x] == c.v[y] {
			c.pc += 2
		}
	case 0x6: // LD Vx, byte
		c.v[x] = nn
	case 0x7: // ADD Vx, byte (no carry flag)
		c.v[x] += nn
	case 0x8:
		return c.executeALU(op, x, y)
	case 0x9: // SNE Vx, Vy
		if n != 0 {
			return c.illegal(op)
		}
		if c.v[x] != c.v[y] {
			c.pc += 2
		}
	case 0xA: // LD I, addr
		c.i = nnn
	case 0xB: // JP V0, addr
		c.pc = nnn + uint16(c.v[0])
	case 0xC: // RND Vx, byte
		c.v[x] = uint8(c.rand.Intn(256)) & nn
	case 0xD: // DRW Vx, Vy, nibble
		return c.draw(x, y, n)
	case 0xE:
		switch nn {
		case 0x9E: // SKP Vx
			if c.keypad[c.v[x]&0x0F] {
				c.pc += 2
			}
		case 0xA1: // SKNP Vx
			if !c.keypad[c.v[x]&0x0F] {
				c.pc += 2
			}
		default:
			return c.illegal(op)
		}
	case 0xF:
		return c.executeMisc(op, x, nn)
	}

	return nil
}

// executeALU executes the 8XYN arithmetic and bitwise group.
func (c *Chip8) executeALU(op uint16, x, y uint8) error {
	switch op & 0x000F {
	case 0x0: // LD Vx, Vy
		c.v[x] = c.v[y]
	case 0x1: // OR Vx, Vy
		c.v[x] |= c.v[y]
	case 0x2: // AND Vx, Vy
		c.v[x] &= c.v[y]
	case 0x3: // XOR Vx, Vy
		c.v[x] ^= c.v[y]
	case 0x4: // ADD Vx, Vy with carry in VF
		sum := uint16(c.v[x]) + uint16(c.v[y])
		c.v[x] = uint8(sum)
		if sum > 0xFF {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}
	case 0x5: // SUB Vx, Vy, VF = NOT borrow
		borrow := c.v[x] >= c.v[y]
		c.v[x] -= c.v[y]
		if borrow {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}
	case 0x6: // SHR Vx, VF = shifted out bit
		lsb := c.v[x] & 0x1
		c.v[x] >>= 1
		c.v[0xF] = lsb
	case 0x7: // SUBN Vx, Vy, VF = NOT borrow
		borrow := c.v[y] >= c.v[x]
		c.v[x] = c.v[y] - c.v[x]
		if borrow {
			c.v[0xF] = 1
		} else {
			c.v[0xF] = 0
		}
	case 0xE: // SHL Vx, VF = shifted out bit
		msb := c.v[x] >> 7
		c.v[x] <<= 1
		c.v[0xF] = msb
	default:
		return c.illegal(op)
	}

	return nil
}

// executeMisc executes the FXNN timer, input and memory group.
func (c *Chip8) executeMisc(op uint16, x, nn uint8) error {
	switch nn {
	case 0x07: // LD Vx, DT
		c.v[x] = c.delayTimer
	case 0x0A: // LD Vx, K: block until a key is pressed
		for k := uint8(0); k < uint8(len(c.keypad)); k++ {
			if c.keypad[k] {
				c.v[x] = k
				return nil
			}
		}
		// no key down; repeat this instruction next cycle
		c.pc -= 2
	case 0x15: // LD DT, Vx
		c.delayTimer = c.v[x]
	case 0x18: // LD ST, Vx
		c.soundTimer = c.v[x]
	case 0x1E: // ADD I, Vx
		c.i += uint16(c.v[x])
	case 0x29: // LD F, Vx: I points at the font sprite for Vx
		c.i = fontStart + uint16(c.v[x])*5
	case 0x33: // LD B, Vx: BCD of Vx at I, I+1, I+2
		if int(c.i)+2 >= len(c.ram) {
			return c.memFault(op)
		}
		c.ram[c.i] = c.v[x] / 100
		c.ram[c.i+1] = c.v[x] / 10 % 10
		c.ram[c.i+2] = c.v[x] % 10
	case 0x55: // LD [I], V0..Vx
		if int(c.i)+int(x) >= len(c.ram) {
			return c.memFault(op)
		}
		for r := uint8(0); r <= x; r++ {
			c.ram[c.i+uint16(r)] = c.v[r]
		}
	case 0x65: // LD V0..Vx, [I]
		if int(c.i)+int(x) >= len(c.ram) {
			return c.memFault(op)
		}
		for r := uint8(0); r <= x; r++ {
			c.v[r] = c.ram[c.i+uint16(r)]
		}
	default:
		return c.illegal(op)
	}

	return nil
}

// draw XORs an 8 pixel wide, height pixel tall sprite at
// (Vx, Vy) onto the display plane, wrapping at the edges. VF is
// set when any lit pixel is erased.
func (c *Chip8) draw(x, y, height uint8) error {
	xc := int(c.v[x]) % Width
	yc := int(c.v[y]) % Height

	c.v[0xF] = 0
	for row := 0; row < int(height); row++ {
		addr := int(c.i) + row
		if addr >= len(c.ram) {
			return fmt.Errorf("chip8: sprite read at 0x%04X outside memory", addr)
		}
		sprite := c.ram[addr]

		py := (yc + row) % Height
		for col := 0; col < 8; col++ {
			if sprite&(0x80>>col) == 0 {
				continue
			}
			px := (xc + col) % Width

			idx := py*Width + px
			if c.display[idx] == 1 {
				c.v[0xF] = 1
			}
			c.display[idx] ^= 1
		}
	}

	return nil
}

func (c *Chip8) illegal(op uint16) error {
	return fmt.Errorf("chip8: illegal opcode 0x%04X at 0x%04X", op, c.pc-2)
}

func (c *Chip8) memFault(op uint16) error {
	return fmt.Errorf("chip8: opcode 0x%04X accesses memory outside RAM (I=0x%04X)", op, c.i)
}
