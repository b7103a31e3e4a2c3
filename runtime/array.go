package aruntime

// Array has a fixed capacity chosen at creation. Data is allocated once
// and zeroed; Size marks how many leading slots are in use.
type Array struct {
	Name string
	Cap  int
	Size int
	Data []Value
}

func newArray(name string, capacity int) *Array {
	return &Array{
		Name: name,
		Cap:  capacity,
		Data: make([]Value, capacity),
	}
}

// Get reads slot i. Reads outside the populated range return zero.
func (a *Array) Get(i int64) Value {
	if i < 0 || i >= int64(a.Size) {
		return Zero()
	}
	return a.Data[i]
}

// Set writes slot i, growing Size past it and zero-filling any skipped
// slots. Writing at or beyond the capacity is fatal.
func (a *Array) Set(i int64, v Value) error {
	if i < 0 {
		return fatalf("array %s: negative index %d", a.Name, i)
	}
	if i >= int64(a.Cap) {
		return fatalf("array %s: index %d exceeds capacity %d", a.Name, i, a.Cap)
	}
	for j := a.Size; j < int(i); j++ {
		a.Data[j] = Zero()
	}
	a.Data[i] = v
	if int(i) >= a.Size {
		a.Size = int(i) + 1
	}
	return nil
}

func (a *Array) Push(v Value) error {
	if a.Size >= a.Cap {
		return fatalf("array %s is full (capacity %d)", a.Name, a.Cap)
	}
	a.Data[a.Size] = v
	a.Size++
	return nil
}

func (a *Array) Pop() (Value, error) {
	if a.Size == 0 {
		return Value{}, fatalf("array %s is empty", a.Name)
	}
	a.Size--
	v := a.Data[a.Size]
	a.Data[a.Size] = Zero()
	return v, nil
}

// Values returns a copy of the populated slots.
func (a *Array) Values() []Value {
	return append([]Value(nil), a.Data[:a.Size]...)
}
