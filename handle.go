package objc

// Handles are the raw runtime pointers. Two handles are equal exactly when
// they name the same runtime entity; the zero value of each is the runtime's
// nil.
type (
	// ID is a reference to an instance, or to a class used as an object.
	ID uintptr

	// Class is a registered class or metaclass.
	Class uintptr

	// SEL is a registered method name.
	SEL uintptr

	Method uintptr

	// Ivar describes an instance variable of one class. Its offset is only
	// meaningful for instances of that class and its subclasses.
	Ivar uintptr

	Property uintptr
	Protocol uintptr

	// IMP is a method implementation: a C function whose first two
	// parameters are the receiver and the selector.
	IMP uintptr
)

const (
	Nil      ID    = 0
	NilClass Class = 0
)

func (id ID) IsNil() bool      { return id == Nil }
func (c Class) IsNil() bool    { return c == NilClass }
func (s SEL) IsNil() bool      { return s == 0 }
func (m Method) IsNil() bool   { return m == 0 }
func (v Ivar) IsNil() bool     { return v == 0 }
func (p Property) IsNil() bool { return p == 0 }
func (p Protocol) IsNil() bool { return p == 0 }
func (i IMP) IsNil() bool      { return i == 0 }

// AsID views the class as an object, the receiver of class methods.
func (c Class) AsID() ID { return ID(c) }

func (ID) ObjCType() string       { return "@" }
func (Class) ObjCType() string    { return "#" }
func (SEL) ObjCType() string      { return ":" }
func (IMP) ObjCType() string      { return "^?" }
func (Method) ObjCType() string   { return "^{objc_method=}" }
func (Ivar) ObjCType() string     { return "^{objc_ivar=}" }
func (Property) ObjCType() string { return "^{objc_property=}" }
func (Protocol) ObjCType() string { return "@" }

// Super is the objc_super pair used for sends that start method lookup at
// Class instead of at the receiver's own class. Class is usually the
// superclass of the class whose method is sending.
type Super struct {
	Receiver ID
	Class    Class
}

// PropertyAttribute is one attribute of a declared property, such as
// {"T", "@\"NSString\""} or {"N", ""}.
type PropertyAttribute struct {
	Name  string
	Value string
}

// AssociationPolicy controls how an associated object is retained.
type AssociationPolicy uintptr

const (
	AssociationAssign          AssociationPolicy = 0
	AssociationRetainNonatomic AssociationPolicy = 1
	AssociationCopyNonatomic   AssociationPolicy = 3
	AssociationRetain          AssociationPolicy = 01401
	AssociationCopy            AssociationPolicy = 01403
)
