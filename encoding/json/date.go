package json

import (
	"encoding"
	stdjson "encoding/json"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
	"unsafe"

	"github.com/curtisnewbie/datecodec/codec"
	"github.com/curtisnewbie/datecodec/util/errs"
	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

var timeType = reflect.TypeOf(time.Time{})

// Binds a Go type to a codec.DateType, values of the type are written and read as date strings.
type DateBinding struct {
	typ   reflect.Type
	read  func(ptr unsafe.Pointer, t time.Time)
	write func(ptr unsafe.Pointer) time.Time
}

// Bind T to dt.
//
// Every value of T is then handled by the codec, including fields of other types' T, e.g., binding int64 with
// codec.DateTypeUnixMilli turns all int64 values into date strings.
func BindDateType[T any](dt codec.DateType[T]) DateBinding {
	return DateBinding{
		typ:   reflect.TypeOf((*T)(nil)).Elem(),
		read:  func(ptr unsafe.Pointer, t time.Time) { *(*T)(ptr) = dt.From(t) },
		write: func(ptr unsafe.Pointer) time.Time { return dt.To(*(*T)(ptr)) },
	}
}

// JSON API that reads and writes time.Time, and bound date types, with a codec.Codec.
//
// Nil *time.Time is written as null. Null leaves a time.Time untouched and sets a *time.Time to nil.
//
// DateAPI is safe for concurrent use.
type DateAPI struct {
	codec *codec.Codec
	api   jsoniter.API
}

// Create DateAPI, time.Time is always bound.
func NewDateAPI(c *codec.Codec, types ...DateBinding) *DateAPI {
	ext := &dateExtension{codec: c, bindings: map[reflect.Type]DateBinding{}}
	ext.bindings[timeType] = BindDateType(codec.DateTypeTime)
	for _, b := range types {
		ext.bindings[b.typ] = b
	}

	api := jsoniter.Config{EscapeHTML: true}.Froze()
	api.RegisterExtension(&namingStrategyExtension{jsoniter.DummyExtension{}})
	api.RegisterExtension(ext)
	ext.api = api
	return &DateAPI{codec: c, api: api}
}

func (a *DateAPI) Codec() *codec.Codec {
	return a.codec
}

func (a *DateAPI) Marshal(v any) ([]byte, error) {
	return a.api.Marshal(v)
}

// Unmarshal data into ptr.
//
// If a date can't be parsed, the *codec.SyntaxError is returned as is, its path is the location of the value in
// the document, e.g., $.order.createdAt, $.tags.printed or $.items[1].
func (a *DateAPI) Unmarshal(data []byte, ptr any) error {
	iter := a.api.BorrowIterator(data)
	defer a.api.ReturnIterator(iter)

	st := &decodeState{}
	iter.Attachment = st
	iter.ReadVal(ptr)
	if st.err != nil {
		return st.err
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return iter.Error
	}
	if iter.Error == nil {
		iter.WhatIsNext()
		if iter.Error == nil {
			return errs.ErrIllegalArgument.WithInternalMsg("there are bytes left after unmarshal")
		}
		if iter.Error != io.EOF {
			return iter.Error
		}
	}
	return nil
}

// Unmarshal data into T.
func UnmarshalAs[T any](a *DateAPI, data []byte) (T, error) {
	var t T
	return t, a.Unmarshal(data, &t)
}

type decodeState struct {
	path []string // segments, e.g., ".order", "[1]"
	err  error
}

func (s *decodeState) push(seg string) {
	if s != nil {
		s.path = append(s.path, seg)
	}
}

func (s *decodeState) pop() {
	if s != nil && len(s.path) > 0 {
		s.path = s.path[:len(s.path)-1]
	}
}

func (s *decodeState) String() string {
	return "$" + strings.Join(s.path, "")
}

func iterState(iter *jsoniter.Iterator) *decodeState {
	st, _ := iter.Attachment.(*decodeState)
	return st
}

func iterPath(iter *jsoniter.Iterator) string {
	if st := iterState(iter); st != nil {
		return st.String()
	}
	return "$"
}

var (
	unmarshalerType     = reflect2.TypeOfPtr((*stdjson.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect2.TypeOfPtr((*encoding.TextUnmarshaler)(nil)).Elem()
)

// types that decode themselves are left to jsoniter
func unmarshalsItself(typ reflect2.Type) bool {
	ptr := reflect2.PtrTo(typ)
	return typ.Implements(unmarshalerType) || typ.Implements(textUnmarshalerType) ||
		ptr.Implements(unmarshalerType) || ptr.Implements(textUnmarshalerType)
}

type dateExtension struct {
	jsoniter.DummyExtension
	codec    *codec.Codec
	bindings map[reflect.Type]DateBinding
	api      jsoniter.API
}

func (e *dateExtension) lookup(typ reflect2.Type) (DateBinding, bool) {
	b, ok := e.bindings[typ.Type1()]
	return b, ok
}

func (e *dateExtension) lookupPtr(typ reflect2.Type) (reflect2.Type, DateBinding, bool) {
	if typ.Kind() != reflect.Ptr {
		return nil, DateBinding{}, false
	}
	elem := typ.(reflect2.PtrType).Elem()
	b, ok := e.lookup(elem)
	return elem, b, ok
}

func (e *dateExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if b, ok := e.lookup(typ); ok {
		return &dateDecoder{codec: e.codec, b: b}
	}
	if elem, b, ok := e.lookupPtr(typ); ok {
		return &datePtrDecoder{elemType: elem, elem: &dateDecoder{codec: e.codec, b: b}}
	}
	return e.containerDecoder(typ)
}

// Decoders of maps with string keys, slices and arrays that push the key or index of each value.
func (e *dateExtension) containerDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	switch typ.Kind() {
	case reflect.Map:
		mt := typ.(reflect2.MapType)
		if mt.Key().Kind() != reflect.String || unmarshalsItself(typ) || unmarshalsItself(mt.Key()) {
			return nil
		}
		return &mapPathDecoder{mapType: mt, elem: elemDecoder{api: e.api, typ: mt.Elem()}}
	case reflect.Slice:
		st := typ.(reflect2.SliceType)
		if st.Elem().Kind() == reflect.Uint8 || unmarshalsItself(typ) {
			return nil // base64 []byte and json.RawMessage
		}
		return &slicePathDecoder{sliceType: st, elem: elemDecoder{api: e.api, typ: st.Elem()}}
	case reflect.Array:
		at := typ.(reflect2.ArrayType)
		if unmarshalsItself(typ) {
			return nil
		}
		return &arrayPathDecoder{arrayType: at, elem: elemDecoder{api: e.api, typ: at.Elem()}}
	}
	return nil
}

func (e *dateExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if b, ok := e.lookup(typ); ok {
		return &dateEncoder{codec: e.codec, b: b}
	}
	if _, b, ok := e.lookupPtr(typ); ok {
		return &datePtrEncoder{elem: &dateEncoder{codec: e.codec, b: b}}
	}
	return nil
}

// track field names for SyntaxError.Path
func (e *dateExtension) UpdateStructDescriptor(sd *jsoniter.StructDescriptor) {
	for _, binding := range sd.Fields {
		if binding.Decoder == nil || len(binding.FromNames) < 1 {
			continue
		}
		binding.Decoder = &pathDecoder{seg: "." + binding.FromNames[0], dec: binding.Decoder}
	}
}

type pathDecoder struct {
	seg string
	dec jsoniter.ValDecoder
}

func (d *pathDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	st := iterState(iter)
	st.push(d.seg)
	d.dec.Decode(ptr, iter)
	st.pop()
}

// element decoder resolved on first use, recursive types would never finish otherwise
type elemDecoder struct {
	api  jsoniter.API
	typ  reflect2.Type
	once sync.Once
	dec  jsoniter.ValDecoder
}

func (d *elemDecoder) get() jsoniter.ValDecoder {
	d.once.Do(func() {
		d.dec = d.api.DecoderOf(reflect2.PtrTo(d.typ))
	})
	return d.dec
}

type mapPathDecoder struct {
	mapType reflect2.MapType
	elem    elemDecoder
}

func (d *mapPathDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		*(*unsafe.Pointer)(ptr) = nil
		return
	}
	if d.mapType.UnsafeIsNil(ptr) {
		d.mapType.UnsafeSet(ptr, d.mapType.UnsafeMakeMap(0))
	}
	st := iterState(iter)
	dec := d.elem.get()
	keyType := d.mapType.Key()
	iter.ReadMapCB(func(iter *jsoniter.Iterator, field string) bool {
		key := keyType.UnsafeNew()
		*(*string)(key) = field
		elem := d.elem.typ.UnsafeNew()
		st.push("." + field)
		dec.Decode(elem, iter)
		st.pop()
		if iter.Error != nil {
			return false
		}
		d.mapType.UnsafeSetIndex(ptr, key, elem)
		return true
	})
}

type slicePathDecoder struct {
	sliceType reflect2.SliceType
	elem      elemDecoder
}

func (d *slicePathDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		d.sliceType.UnsafeSetNil(ptr)
		return
	}
	st := iterState(iter)
	dec := d.elem.get()
	n := 0
	ok := iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
		d.sliceType.UnsafeGrow(ptr, n+1)
		st.push("[" + strconv.Itoa(n) + "]")
		dec.Decode(d.sliceType.UnsafeGetIndex(ptr, n), iter)
		st.pop()
		n++
		return iter.Error == nil
	})
	if ok && n == 0 {
		d.sliceType.UnsafeSet(ptr, d.sliceType.UnsafeMakeSlice(0, 0))
	}
}

type arrayPathDecoder struct {
	arrayType reflect2.ArrayType
	elem      elemDecoder
}

func (d *arrayPathDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		return
	}
	st := iterState(iter)
	dec := d.elem.get()
	n := 0
	iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
		if n >= d.arrayType.Len() {
			iter.Skip()
			return iter.Error == nil
		}
		st.push("[" + strconv.Itoa(n) + "]")
		dec.Decode(d.arrayType.UnsafeGetIndex(ptr, n), iter)
		st.pop()
		n++
		return iter.Error == nil
	})
}

type dateDecoder struct {
	codec *codec.Codec
	b     DateBinding
}

func (d *dateDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
	case jsoniter.StringValue:
		token := iter.ReadString()
		if iter.Error != nil {
			return
		}
		t, err := d.codec.Read(token, iterPath(iter))
		if err != nil {
			if st := iterState(iter); st != nil && st.err == nil {
				st.err = err
			}
			iter.ReportError("decode date", err.Error())
			return
		}
		d.b.read(ptr, t)
	default:
		iter.ReportError("decode date", "expect string or null, path: "+iterPath(iter))
	}
}

type datePtrDecoder struct {
	elemType reflect2.Type
	elem     *dateDecoder
}

func (d *datePtrDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.ReadNil() {
		*(*unsafe.Pointer)(ptr) = nil
		return
	}
	p := *(*unsafe.Pointer)(ptr)
	if p == nil {
		p = d.elemType.UnsafeNew()
	}
	d.elem.Decode(p, iter)
	if iter.Error == nil {
		*(*unsafe.Pointer)(ptr) = p
	}
}

type dateEncoder struct {
	codec *codec.Codec
	b     DateBinding
}

func (e *dateEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return e.b.write(ptr).IsZero()
}

func (e *dateEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString(e.codec.Write(e.b.write(ptr)))
}

type datePtrEncoder struct {
	elem *dateEncoder
}

func (e *datePtrEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return *(*unsafe.Pointer)(ptr) == nil
}

func (e *datePtrEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	p := *(*unsafe.Pointer)(ptr)
	if p == nil {
		stream.WriteNil()
		return
	}
	e.elem.Encode(p, stream)
}
