package alkahest

import (
	"reflect"
	"sync"
)

// Record is the reflection-driven struct walker: the Go stand-in for
// the compile-time derive macros spec §6 explicitly puts out of scope.
// It caches one fieldPlan per reflect.Type the first time it sees that
// type, the same trade the teacher's Fractus/HighPerfFractus make
// (fractus.go, fractus_improv.go) to avoid re-walking struct tags on
// every call.
type Record struct {
	mu   sync.RWMutex
	plan map[reflect.Type]*fieldPlan
}

// defaultRecord is the package-level plan cache used by the generic
// Serialize/Deserialize entry points below.
var defaultRecord = &Record{}

type fieldKind int

const (
	kindFixed fieldKind = iota
	kindBool
	kindString
	kindBytes
	kindSliceFixed  // []T where T is a fixed primitive kind
	kindPointerSome // *T where T is a fixed primitive kind, encoded as Option<F(T)>
	kindNested      // embedded/nested struct, inlined field-by-field
	kindBoxed       // Boxed[T], encoded as Ref[T]
)

type fieldEntry struct {
	idx      int
	kind     fieldKind
	elemKind reflect.Kind // for kindSliceFixed/kindPointerSome: the primitive element kind
	nested   *fieldPlan   // for kindNested
	size     int          // inline byte size of this field (2*AddressWidth for string/bytes/slice fields)
}

type fieldPlan struct {
	fields    []fieldEntry
	stackSize int // sum of the fields' inline sizes
	exact     bool
}

// fixedKindSize returns the wire size of a fixed-width primitive Go
// kind, or 0 if k is not one.
func fixedKindSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8
	default:
		return 0
	}
}

func isBoxedType(t reflect.Type) bool {
	_, ok := reflect.New(t).Interface().(interface{ IsAlkahestBoxed() })
	return ok
}

// planFor returns the cached fieldPlan for t, building it on first use.
func (rec *Record) planFor(t reflect.Type, seen map[reflect.Type]bool) (*fieldPlan, error) {
	rec.mu.RLock()
	if p, ok := rec.plan[t]; ok {
		rec.mu.RUnlock()
		return p, nil
	}
	rec.mu.RUnlock()

	if seen == nil {
		seen = map[reflect.Type]bool{}
	}
	if seen[t] {
		return nil, ErrCyclicFormula
	}
	seen[t] = true

	if t.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	plan := &fieldPlan{exact: true}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue
		}
		ft := sf.Type

		if isBoxedType(ft) {
			plan.fields = append(plan.fields, fieldEntry{idx: i, kind: kindBoxed, size: AddressWidth})
			plan.stackSize += AddressWidth
			continue
		}

		switch ft.Kind() {
		case reflect.Bool:
			plan.fields = append(plan.fields, fieldEntry{idx: i, kind: kindBool, size: 1})
			plan.stackSize += 1
		case reflect.Int8, reflect.Uint8, reflect.Int16, reflect.Uint16,
			reflect.Int32, reflect.Uint32, reflect.Float32,
			reflect.Int64, reflect.Uint64, reflect.Float64:
			sz := fixedKindSize(ft.Kind())
			plan.fields = append(plan.fields, fieldEntry{idx: i, kind: kindFixed, elemKind: ft.Kind(), size: sz})
			plan.stackSize += sz
		case reflect.String:
			plan.fields = append(plan.fields, fieldEntry{idx: i, kind: kindString, size: 2 * AddressWidth})
			plan.stackSize += 2 * AddressWidth
			plan.exact = false
		case reflect.Slice:
			et := ft.Elem()
			if et.Kind() == reflect.Uint8 {
				plan.fields = append(plan.fields, fieldEntry{idx: i, kind: kindBytes, size: 2 * AddressWidth})
			} else if fixedKindSize(et.Kind()) > 0 {
				plan.fields = append(plan.fields, fieldEntry{idx: i, kind: kindSliceFixed, elemKind: et.Kind(), size: 2 * AddressWidth})
			} else {
				return nil, ErrUnsupported
			}
			plan.stackSize += 2 * AddressWidth
			plan.exact = false
		case reflect.Pointer:
			et := ft.Elem()
			if fixedKindSize(et.Kind()) == 0 {
				return nil, ErrUnsupported
			}
			sz := fixedKindSize(et.Kind())
			plan.fields = append(plan.fields, fieldEntry{idx: i, kind: kindPointerSome, elemKind: et.Kind(), size: 1 + sz})
			plan.stackSize += 1 + sz
		case reflect.Struct:
			nested, err := rec.planFor(ft, seen)
			if err != nil {
				return nil, err
			}
			plan.fields = append(plan.fields, fieldEntry{idx: i, kind: kindNested, nested: nested, size: nested.stackSize})
			plan.stackSize += nested.stackSize
			if !nested.exact {
				plan.exact = false
			}
		default:
			return nil, ErrUnsupported
		}
	}

	rec.mu.Lock()
	if rec.plan == nil {
		rec.plan = make(map[reflect.Type]*fieldPlan)
	}
	rec.plan[t] = plan
	rec.mu.Unlock()
	return plan, nil
}

func writeFixedKind(w *Writer, v reflect.Value, k reflect.Kind) error {
	switch k {
	case reflect.Int8:
		return WriteI8(w, int8(v.Int()))
	case reflect.Uint8:
		return WriteU8(w, uint8(v.Uint()))
	case reflect.Int16:
		return WriteI16(w, int16(v.Int()))
	case reflect.Uint16:
		return WriteU16(w, uint16(v.Uint()))
	case reflect.Int32:
		return WriteI32(w, int32(v.Int()))
	case reflect.Uint32:
		return WriteU32(w, uint32(v.Uint()))
	case reflect.Int64:
		return WriteI64(w, v.Int())
	case reflect.Uint64:
		return WriteU64(w, v.Uint())
	case reflect.Float32:
		return WriteF32(w, float32(v.Float()))
	case reflect.Float64:
		return WriteF64(w, v.Float())
	default:
		return ErrUnsupported
	}
}

func readFixedKind(r *Reader, k reflect.Kind) (reflect.Value, error) {
	switch k {
	case reflect.Int8:
		v, err := ReadI8(r)
		return reflect.ValueOf(v), err
	case reflect.Uint8:
		v, err := ReadU8(r)
		return reflect.ValueOf(v), err
	case reflect.Int16:
		v, err := ReadI16(r)
		return reflect.ValueOf(v), err
	case reflect.Uint16:
		v, err := ReadU16(r)
		return reflect.ValueOf(v), err
	case reflect.Int32:
		v, err := ReadI32(r)
		return reflect.ValueOf(v), err
	case reflect.Uint32:
		v, err := ReadU32(r)
		return reflect.ValueOf(v), err
	case reflect.Int64:
		v, err := ReadI64(r)
		return reflect.ValueOf(v), err
	case reflect.Uint64:
		v, err := ReadU64(r)
		return reflect.ValueOf(v), err
	case reflect.Float32:
		v, err := ReadF32(r)
		return reflect.ValueOf(v), err
	case reflect.Float64:
		v, err := ReadF64(r)
		return reflect.ValueOf(v), err
	default:
		return reflect.Value{}, ErrUnsupported
	}
}

func (plan *fieldPlan) write(w *Writer, v reflect.Value, opts DecodeOptions) error {
	for _, fe := range plan.fields {
		fv := v.Field(fe.idx)
		switch fe.kind {
		case kindBool:
			if err := WriteBool(w, fv.Bool()); err != nil {
				return err
			}
		case kindFixed:
			if err := writeFixedKind(w, fv, fe.elemKind); err != nil {
				return err
			}
		case kindString:
			if err := WriteStr(w, fv.String()); err != nil {
				return err
			}
		case kindBytes:
			if err := WriteBytes(w, fv.Bytes()); err != nil {
				return err
			}
		case kindSliceFixed:
			n := fv.Len()
			err := w.WriteRefPair(n, func(w *Writer) error {
				for i := 0; i < n; i++ {
					if err := writeFixedKind(w, fv.Index(i), fe.elemKind); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
		case kindPointerSome:
			if fv.IsNil() {
				if err := WriteU8(w, 0); err != nil {
					return err
				}
				if err := w.WriteZero(fe.size - 1); err != nil {
					return err
				}
				continue
			}
			if err := WriteU8(w, 1); err != nil {
				return err
			}
			if err := writeFixedKind(w, fv.Elem(), fe.elemKind); err != nil {
				return err
			}
		case kindNested:
			if err := fe.nested.write(w, fv, opts); err != nil {
				return err
			}
		case kindBoxed:
			valueField := fv.FieldByName("Value")
			err := w.WriteOffsetOnly(func(w *Writer) error {
				nested, err := defaultRecord.planFor(valueField.Type(), nil)
				if err != nil {
					return err
				}
				return nested.write(w, valueField, opts)
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (plan *fieldPlan) read(r *Reader, v reflect.Value, opts DecodeOptions) error {
	for _, fe := range plan.fields {
		fv := v.Field(fe.idx)
		switch fe.kind {
		case kindBool:
			b, err := ReadBool(r, opts)
			if err != nil {
				return err
			}
			fv.SetBool(b)
		case kindFixed:
			rv, err := readFixedKind(r, fe.elemKind)
			if err != nil {
				return err
			}
			setFixedValue(fv, rv, fe.elemKind)
		case kindString:
			s, err := ReadStr(r)
			if err != nil {
				return err
			}
			fv.SetString(s)
		case kindBytes:
			b, err := ReadBytes(r)
			if err != nil {
				return err
			}
			fv.SetBytes(b)
		case kindSliceFixed:
			count, payload, err := r.ReadRefPair()
			if err != nil {
				return err
			}
			elemSize := fixedKindSize(fe.elemKind)
			if err := payload.ValidatePayload(int(count) * elemSize); err != nil {
				return err
			}
			slice := reflect.MakeSlice(fv.Type(), int(count), int(count))
			for i := 0; i < int(count); i++ {
				rv, err := readFixedKind(payload, fe.elemKind)
				if err != nil {
					return err
				}
				setFixedValue(slice.Index(i), rv, fe.elemKind)
			}
			fv.Set(slice)
		case kindPointerSome:
			tag, err := ReadU8(r)
			if err != nil {
				return err
			}
			if tag == 0 {
				if err := r.SkipRaw(fe.size - 1); err != nil {
					return err
				}
				fv.SetZero()
				continue
			}
			if tag != 1 {
				return &InvalidEncodingError{At: r.pos - 1, What: "option tag outside {0,1}"}
			}
			rv, err := readFixedKind(r, fe.elemKind)
			if err != nil {
				return err
			}
			ptr := reflect.New(fv.Type().Elem())
			setFixedValue(ptr.Elem(), rv, fe.elemKind)
			fv.Set(ptr)
		case kindNested:
			if err := fe.nested.read(r, fv, opts); err != nil {
				return err
			}
		case kindBoxed:
			payload, err := r.ReadOffsetOnly()
			if err != nil {
				return err
			}
			valueField := fv.FieldByName("Value")
			nested, err := defaultRecord.planFor(valueField.Type(), nil)
			if err != nil {
				return err
			}
			if err := nested.read(payload, valueField, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func setFixedValue(dst reflect.Value, src reflect.Value, k reflect.Kind) {
	switch k {
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(src.Float())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(src.Int())
	default:
		dst.SetUint(src.Uint())
	}
}

// RecordStackSize returns the inline footprint in bytes that v's
// struct type would occupy, without encoding it.
func RecordStackSize(v any) (int, error) {
	t, _, err := structTypeOf(v)
	if err != nil {
		return 0, err
	}
	plan, err := defaultRecord.planFor(t, nil)
	if err != nil {
		return 0, err
	}
	return plan.stackSize, nil
}

func structTypeOf(v any) (reflect.Type, reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, reflect.Value{}, ErrNotStruct
	}
	return rv.Type(), rv, nil
}

// SerializedSize dry-runs the encoding of v to report how large its
// buffer would need to be, without allocating or writing one — the
// public counterpart of the internal dry Writer.
func SerializedSize(v any) (Sizes, error) {
	t, rv, err := structTypeOf(v)
	if err != nil {
		return Sizes{}, err
	}
	plan, err := defaultRecord.planFor(t, nil)
	if err != nil {
		return Sizes{}, err
	}
	w := newDryWriter()
	if err := plan.write(w, rv, DefaultDecodeOptions); err != nil {
		return Sizes{}, err
	}
	return w.Sizes(), nil
}

// SerializeInto encodes v into buf and returns the number of bytes
// written (buf[:n] is the valid encoding), or BufferTooSmallError if
// buf is too small.
func SerializeInto(buf []byte, v any) (int, error) {
	t, rv, err := structTypeOf(v)
	if err != nil {
		return 0, err
	}
	plan, err := defaultRecord.planFor(t, nil)
	if err != nil {
		return 0, err
	}
	w := NewWriter(buf)
	if err := plan.write(w, rv, DefaultDecodeOptions); err != nil {
		return 0, err
	}
	return w.Finish(), nil
}

// SerializeToVec encodes v into a freshly allocated, exactly-sized
// buffer.
func SerializeToVec(v any) ([]byte, error) {
	sizes, err := SerializedSize(v)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, sizes.Total())
	n, err := SerializeInto(buf, v)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Deserialize decodes a value of type T from buf using strict
// validation (bad UTF-8, out-of-range tags, and out-of-buffer offsets
// all fail).
func Deserialize[T any](buf []byte) (T, error) {
	return DeserializeWith[T](buf, DefaultDecodeOptions)
}

// DeserializeWith decodes a value of type T from buf using opts.
func DeserializeWith[T any](buf []byte, opts DecodeOptions) (T, error) {
	var out T
	t, rv, err := structTypeOf(&out)
	if err != nil {
		return out, err
	}
	plan, err := defaultRecord.planFor(t, nil)
	if err != nil {
		return out, err
	}
	r := NewReader(buf)
	if err := plan.read(r, rv, opts); err != nil {
		return out, err
	}
	return out, nil
}
