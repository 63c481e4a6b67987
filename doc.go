// Package objc is a typed layer over the Objective-C runtime of Darwin.
//
// Runtime entities are plain value handles (Class, ID, SEL, Method, Ivar,
// Property, Protocol, IMP) compared by identity. A handle that names nothing
// is the runtime's nil, spelled Nil and NilClass; lookups never return Go
// errors, and the Optional returning variants exist where a present/absent
// answer reads better.
//
// Messages are sent through Sender values built by MsgSend and MsgSendSuper.
// The runtime needs a different entry point depending on where the C calling
// convention of the host returns a value of the result type, so the sender is
// specialised per result type once, when it is created:
//
//	description := objc.MsgSend[objc.ID]().Send(obj, objc.RegisterName("description"))
//	frame := objc.MsgSend[Rect]().Send(view, objc.RegisterName("frame"))
//
// # Hazards
//
// The runtime checks nothing. All of the following corrupt memory or crash
// the process instead of returning an error:
//
//   - sending a message with a result or argument type that differs from the
//     method's real signature;
//   - sending to a deallocated object;
//   - using an Ivar offset with an object of an unrelated class;
//   - reading ID.ISA of a tagged pointer (use ID.Class);
//   - keeping a List slice after its Free.
//
// New classes are built through a ClassPair, which only exists before
// registration; Register hands back a Class, which has no operations that
// change the instance layout. Methods added with Go functions run on
// whatever thread the runtime calls them from, and a panic inside one is
// recovered and logged because it cannot unwind through Objective-C frames.
//
// Everything beyond the handle types builds only on darwin with cgo, and
// libffi performs the calls.
package objc
