package assets

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// NoID marks an absent numeric reference and terminates per subtype id
// lists.
const NoID int32 = -1

// Script is a named entry point into a code unit.
type Script struct {
	Name         string `cbor:"name" json:"name"`
	AssetIndex   int32  `cbor:"assetIndex" json:"assetIndex"`
	CodeID       int32  `cbor:"codeId" json:"codeId"`
	IsGlobalInit bool   `cbor:"isGlobalInit" json:"isGlobalInit"`
}

// Opcode names a VM instruction. Execution semantics live in the VM.
type Opcode string

const (
	OpConv    Opcode = "CONV"
	OpMul     Opcode = "MUL"
	OpDiv     Opcode = "DIV"
	OpRem     Opcode = "REM"
	OpMod     Opcode = "MOD"
	OpAdd     Opcode = "ADD"
	OpSub     Opcode = "SUB"
	OpAnd     Opcode = "AND"
	OpOr      Opcode = "OR"
	OpXor     Opcode = "XOR"
	OpNeg     Opcode = "NEG"
	OpNot     Opcode = "NOT"
	OpShl     Opcode = "SHL"
	OpShr     Opcode = "SHR"
	OpCmp     Opcode = "CMP"
	OpPop     Opcode = "POP"
	OpDup     Opcode = "DUP"
	OpRet     Opcode = "RET"
	OpExit    Opcode = "EXIT"
	OpPopz    Opcode = "POPZ"
	OpB       Opcode = "B"
	OpBt      Opcode = "BT"
	OpBf      Opcode = "BF"
	OpPushEnv Opcode = "PUSHENV"
	OpPopEnv  Opcode = "POPENV"
	OpPush    Opcode = "PUSH"
	OpPushLoc Opcode = "PUSHLOC"
	OpPushGlb Opcode = "PUSHGLB"
	OpPushI   Opcode = "PUSHI"
	OpCall    Opcode = "CALL"
	OpCallV   Opcode = "CALLV"
	OpBreak   Opcode = "BREAK"
)

// Instruction is one decoded VM instruction. Only the operands a given
// opcode uses are set.
type Instruction struct {
	Opcode       Opcode  `cbor:"op" json:"opcode"`
	Type1        string  `cbor:"t1,omitempty" json:"type1,omitempty"`
	Type2        string  `cbor:"t2,omitempty" json:"type2,omitempty"`
	IntValue     int64   `cbor:"i,omitempty" json:"intValue,omitempty"`
	FloatValue   float64 `cbor:"f,omitempty" json:"floatValue,omitempty"`
	StringValue  string  `cbor:"s,omitempty" json:"stringValue,omitempty"`
	FunctionName string  `cbor:"fn,omitempty" json:"functionName,omitempty"`
	FunctionArgc int32   `cbor:"argc,omitempty" json:"functionArgumentCount,omitempty"`
	JumpToEnd    bool    `cbor:"end,omitempty" json:"jumpToEnd,omitempty"`
	ExitMagic    bool    `cbor:"exitMagic,omitempty" json:"popenvExitMagic,omitempty"`
}

// Code is a named bytecode unit. AssetID and ParentAssetID are its identity
// in the pack; overrides only ever replace the content.
type Code struct {
	Name          string        `cbor:"name" json:"name"`
	AssetID       int32         `cbor:"assetId" json:"assetId"`
	ParentAssetID int32         `cbor:"parentAssetId" json:"parentAssetId"`
	LocalCount    int32         `cbor:"locals" json:"localCount"`
	ArgumentCount int32         `cbor:"args" json:"argumentCount"`
	IsGlobalInit  bool          `cbor:"globalInit" json:"isGlobalInit"`
	Instructions  []Instruction `cbor:"instructions" json:"instructions"`
}

// Clone returns a deep copy.
func (c *Code) Clone() *Code {
	out := *c
	out.Instructions = append([]Instruction(nil), c.Instructions...)
	return &out
}

// Digest fingerprints the instruction stream. Identity fields are left out
// so a code unit and its override can be compared by content.
func (c *Code) Digest() uint64 {
	d := xxhash.New()
	var scratch [8]byte
	writeInt := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch[:], v)
		_, _ = d.Write(scratch[:])
	}
	writeString := func(s string) {
		writeInt(uint64(len(s)))
		_, _ = d.WriteString(s)
	}

	writeInt(uint64(c.LocalCount))
	writeInt(uint64(c.ArgumentCount))
	for _, ins := range c.Instructions {
		writeString(string(ins.Opcode))
		writeString(ins.Type1)
		writeString(ins.Type2)
		writeInt(uint64(ins.IntValue))
		writeInt(math.Float64bits(ins.FloatValue))
		writeString(ins.StringValue)
		writeString(ins.FunctionName)
		writeInt(uint64(ins.FunctionArgc))
	}
	return d.Sum64()
}

// Calls lists the function names targeted by CALL instructions in order.
func (c *Code) Calls() []string {
	var out []string
	for _, ins := range c.Instructions {
		if ins.Opcode == OpCall {
			out = append(out, ins.FunctionName)
		}
	}
	return out
}
