// Package wasmlib implements the native library surface on top of a
// WebAssembly instance hosted by wazero.
//
// The counter store genuinely lives outside the Go heap: every session
// context owns a 128-byte block in the instance's linear memory, and all
// reads and bumps go through the module's exported functions, the way a
// cgo binding would call into a shared library. The module itself is
// tiny - a memory and two functions - and is assembled directly in the
// wasm binary format at startup; no toolchain is involved.
//
//	lib, err := wasmlib.New(ctx)
//	if err != nil {
//		return err
//	}
//	defer lib.Close(ctx)
//
//	id, _ := lib.NewSessionContext()
//	lib.Bump(id, sslstats.CounterAccept, 1)
//
// Calls into the instance serialize on an internal mutex; wazero module
// instances are not safe for concurrent invocation.
package wasmlib
