package wasmlib

// Minimal wasm binary emission: just enough encoding to assemble the
// counter module below. Addresses are ctx*blockSize + counter*8, with
// context ID 0 reserved so the first block is never handed out.
//
//	(func (export "read") (param i32 i32) (result i64) ...)
//	(func (export "bump") (param i32 i32 i64) ...)
//	(memory (export "memory") 1)

const (
	secType     = 0x01
	secFunction = 0x03
	secMemory   = 0x05
	secExport   = 0x07
	secCode     = 0x0a

	typeFunc = 0x60
	typeI32  = 0x7f
	typeI64  = 0x7e

	exportFunc   = 0x00
	exportMemory = 0x02

	opLocalGet = 0x20
	opLocalTee = 0x22
	opI64Load  = 0x29
	opI64Store = 0x37
	opI32Const = 0x41
	opI32Add   = 0x6a
	opI32Mul   = 0x6c
	opI32Shl   = 0x74
	opI64Add   = 0x7c
	opEnd      = 0x0b
)

type buffer struct {
	bytes []byte
}

func (b *buffer) op(v byte) {
	b.bytes = append(b.bytes, v)
}

func (b *buffer) raw(v []byte) {
	b.bytes = append(b.bytes, v...)
}

// u32 writes unsigned LEB128 encoding.
func (b *buffer) u32(v uint32) {
	for {
		byt := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			byt |= 0x80
		}
		b.op(byt)
		if v == 0 {
			break
		}
	}
}

// i32 writes signed LEB128 encoding.
func (b *buffer) i32(v int32) {
	for {
		byt := byte(v & 0x7F)
		v >>= 7
		if (v == 0 && byt&0x40 == 0) || (v == -1 && byt&0x40 != 0) {
			b.op(byt)
			break
		}
		b.op(byt | 0x80)
	}
}

func (b *buffer) name(s string) {
	b.u32(uint32(len(s)))
	b.raw([]byte(s))
}

func (b *buffer) section(id byte, body []byte) {
	b.op(id)
	b.u32(uint32(len(body)))
	b.raw(body)
}

func (b *buffer) body(instrs []byte) {
	b.u32(uint32(len(instrs)))
	b.raw(instrs)
}

// counterModule assembles the module binary.
func counterModule() []byte {
	var b buffer
	b.raw([]byte{0x00, 0x61, 0x73, 0x6d}) // magic
	b.raw([]byte{0x01, 0x00, 0x00, 0x00}) // version

	var types buffer
	types.u32(2)
	// type 0: (i32, i32) -> i64
	types.raw([]byte{typeFunc, 0x02, typeI32, typeI32, 0x01, typeI64})
	// type 1: (i32, i32, i64) -> ()
	types.raw([]byte{typeFunc, 0x03, typeI32, typeI32, typeI64, 0x00})
	b.section(secType, types.bytes)

	var funcs buffer
	funcs.u32(2)
	funcs.u32(0)
	funcs.u32(1)
	b.section(secFunction, funcs.bytes)

	// One memory, one page minimum, no maximum; grown on demand.
	var mems buffer
	mems.u32(1)
	mems.op(0x00)
	mems.u32(1)
	b.section(secMemory, mems.bytes)

	var exports buffer
	exports.u32(3)
	exports.name("memory")
	exports.op(exportMemory)
	exports.u32(0)
	exports.name("read")
	exports.op(exportFunc)
	exports.u32(0)
	exports.name("bump")
	exports.op(exportFunc)
	exports.u32(1)
	b.section(secExport, exports.bytes)

	var code buffer
	code.u32(2)
	code.body(readBody())
	code.body(bumpBody())
	b.section(secCode, code.bytes)

	return b.bytes
}

// blockAddr emits ctx*blockSize + counter*8 from params 0 and 1.
func blockAddr(f *buffer) {
	f.op(opLocalGet)
	f.u32(0)
	f.op(opI32Const)
	f.i32(blockSize)
	f.op(opI32Mul)
	f.op(opLocalGet)
	f.u32(1)
	f.op(opI32Const)
	f.i32(3)
	f.op(opI32Shl)
	f.op(opI32Add)
}

// readBody: i64.load of the counter slot.
func readBody() []byte {
	var f buffer
	f.u32(0) // no locals
	blockAddr(&f)
	f.op(opI64Load)
	f.u32(3) // alignment 2^3
	f.u32(0) // offset
	f.op(opEnd)
	return f.bytes
}

// bumpBody: read-modify-write of the counter slot, address parked in a
// local because i64.store consumes it twice.
func bumpBody() []byte {
	var f buffer
	f.u32(1) // one locals group
	f.u32(1)
	f.op(typeI32) // local 3: slot address
	blockAddr(&f)
	f.op(opLocalTee)
	f.u32(3)
	f.op(opLocalGet)
	f.u32(3)
	f.op(opI64Load)
	f.u32(3)
	f.u32(0)
	f.op(opLocalGet)
	f.u32(2)
	f.op(opI64Add)
	f.op(opI64Store)
	f.u32(3)
	f.u32(0)
	f.op(opEnd)
	return f.bytes
}
