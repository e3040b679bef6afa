package cpu

import (
	"fmt"
	"strings"
)

// Register is a general purpose register number. NoRegister marks an unused slot.
type Register int8

// NoRegister is an empty register slot.
const NoRegister Register = -1

// Conventional register numbers.
const (
	RegZero Register = iota
	RegAT
	RegV0
	RegV1
	RegA0
	RegA1
	RegA2
	RegA3
	RegT0
	RegT1
	RegT2
	RegT3
	RegT4
	RegT5
	RegT6
	RegT7
	RegS0
	RegS1
	RegS2
	RegS3
	RegS4
	RegS5
	RegS6
	RegS7
	RegT8
	RegT9
	RegK0
	RegK1
	RegGP
	RegSP
	RegFP
	RegRA
)

var registerNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

var registerByName = func() map[string]Register {
	m := make(map[string]Register, len(registerNames)+1)
	for i, name := range registerNames {
		m[name] = Register(i)
	}
	m["s8"] = RegFP
	return m
}()

// ParseRegister looks up a register by conventional name, with or without a
// leading '$'. Numeric forms are not accepted: bare numbers are immediates.
func ParseRegister(s string) (Register, bool) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	r, ok := registerByName[s]
	if !ok {
		return NoRegister, false
	}
	return r, true
}

// IsRegister reports whether s lexically names a register.
func IsRegister(s string) bool {
	_, ok := ParseRegister(s)
	return ok
}

// Valid reports whether r is a real register.
func (r Register) Valid() bool {
	return r >= 0 && int(r) < len(registerNames)
}

// Name returns the bare register name ("t0"), or "" for NoRegister.
func (r Register) Name() string {
	if !r.Valid() {
		return ""
	}
	return registerNames[r]
}

func (r Register) String() string {
	if r == NoRegister {
		return "-"
	}
	if !r.Valid() {
		return fmt.Sprintf("$%d?", int(r))
	}
	return "$" + registerNames[r]
}
