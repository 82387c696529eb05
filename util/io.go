package util

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

func NewBufferReader(data []byte) BufferReader {
	reader := bytes.NewReader(data)
	return BufferReader{
		reader: reader,
	}
}

type BufferReader struct {
	reader *bytes.Reader
}

func Read[T any](reader BufferReader) T {
	var value T
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

func ReadArray[T any](reader BufferReader) Array[T] {
	var size int32
	binary.Read(reader.reader, binary.LittleEndian, &size)
	value := NewArray[T](int(size))
	binary.Read(reader.reader, binary.LittleEndian, &value)
	return value
}

// Reads a length-prefixed utf-8 string.
func ReadString(reader BufferReader) string {
	var size int32
	binary.Read(reader.reader, binary.LittleEndian, &size)
	data := make([]byte, size)
	io.ReadFull(reader.reader, data)
	return string(data)
}

func NewBufferWriter() BufferWriter {
	buffer := bytes.Buffer{}
	return BufferWriter{
		buffer: &buffer,
	}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer BufferWriter, value T) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteArray[T any](writer BufferWriter, value Array[T]) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(value.Length()))
	binary.Write(writer.buffer, binary.LittleEndian, value)
}
func WriteString(writer BufferWriter, value string) {
	binary.Write(writer.buffer, binary.LittleEndian, int32(len(value)))
	writer.buffer.WriteString(value)
}

func WriteBufferToFile(writer BufferWriter, file string) error {
	return os.WriteFile(file, writer.Bytes(), 0644)
}

func WriteArrayToFile[T any](value Array[T], file string) error {
	writer := NewBufferWriter()
	WriteArray[T](writer, value)
	return WriteBufferToFile(writer, file)
}

func WriteJSONToFile[T any](value T, file string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

// Reads the whole file, failing with a readable message if it is missing.
func ReadFileBuffer(file string) (BufferReader, error) {
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return BufferReader{}, fmt.Errorf("file not found: %s", file)
	}
	if err != nil {
		return BufferReader{}, err
	}
	return NewBufferReader(data), nil
}

func ReadArrayFromFile[T any](file string) (Array[T], error) {
	reader, err := ReadFileBuffer(file)
	if err != nil {
		return nil, err
	}
	return ReadArray[T](reader), nil
}

func ReadJSONFromFile[T any](file string) (T, error) {
	var value T
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return value, fmt.Errorf("file not found: %s", file)
	}
	if err != nil {
		return value, err
	}
	err = json.Unmarshal(data, &value)
	return value, err
}

//*******************************************
// csv reader
//*******************************************

var text_unmarshaler_type = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// CSVReader decodes rows of a delimited file into structs of type T.
//
// Struct fields are bound to columns by their `csv:"name"` tag. Columns
// missing from the header leave the field at its zero value, as do empty
// cells. Fields whose pointer implements encoding.TextUnmarshaler are
// decoded through it. Rows with a wrong field count are skipped.
type CSVReader[T any] struct {
	reader *csv.Reader
	fields List[Triple[int, int, reflect.Kind]]
	err    error
}

func NewCSVReader[T any](r io.Reader, delimiter rune) (*CSVReader[T], error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	name_row_mapping := NewDict[string, int](10)
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name_row_mapping[strings.TrimSpace(name)] = i
	}

	var val T
	typ := reflect.TypeOf(val)
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("csv row type must be a struct, got %v", typ)
	}
	num_field := typ.NumField()
	fields := NewList[Triple[int, int, reflect.Kind]](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("csv")
		if tag == "" {
			continue
		}
		if !name_row_mapping.ContainsKey(tag) {
			continue
		}
		row := name_row_mapping[tag]
		if reflect.PointerTo(field.Type).Implements(text_unmarshaler_type) {
			fields.Add(MakeTriple(i, row, reflect.Interface))
			continue
		}
		switch field.Type.Kind() {
		case reflect.Bool:
			fields.Add(MakeTriple(i, row, reflect.Bool))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(MakeTriple(i, row, reflect.Int))
		case reflect.Float32, reflect.Float64:
			fields.Add(MakeTriple(i, row, reflect.Float64))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fields.Add(MakeTriple(i, row, reflect.Uint))
		case reflect.String:
			fields.Add(MakeTriple(i, row, reflect.String))
		}
	}
	return &CSVReader[T]{
		reader: reader,
		fields: fields,
	}, nil
}

func (self *CSVReader[T]) Rows() func(yield func(T) bool) {
	return func(yield func(T) bool) {
		var val T
		typ := reflect.TypeOf(val)
		for {
			record, err := self.reader.Read()
			if err == io.EOF {
				break
			}
			var parse_err *csv.ParseError
			if errors.As(err, &parse_err) {
				continue
			} else if err != nil {
				self.err = err
				break
			}
			t := reflect.New(typ).Elem()
			for _, field := range self.fields {
				index := field.A
				row := field.B
				kind := field.C
				value := record[row]
				if value == "" {
					continue
				}
				f := t.Field(index)
				switch kind {
				case reflect.Interface:
					f.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value))
				case reflect.Bool:
					num, _ := strconv.ParseBool(strings.TrimSpace(value))
					f.SetBool(num)
				case reflect.Int:
					num, _ := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
					f.SetInt(num)
				case reflect.Uint:
					num, _ := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
					f.SetUint(num)
				case reflect.Float64:
					num, _ := strconv.ParseFloat(strings.TrimSpace(value), 64)
					f.SetFloat(num)
				case reflect.String:
					f.SetString(value)
				}
			}
			if !yield(t.Interface().(T)) {
				break
			}
		}
	}
}

// Err returns the first read error that ended Rows early. Skipped malformed
// rows are not reported.
func (self *CSVReader[T]) Err() error {
	return self.err
}

// Reads all rows of a delimited file.
func ReadCSVFromFile[T any](filename string, delimiter rune) (List[T], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := ReadCSV[T](file, delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rows, nil
}

// Reads all rows from r. A read error fails the whole read instead of
// returning the rows decoded so far.
func ReadCSV[T any](r io.Reader, delimiter rune) (List[T], error) {
	reader, err := NewCSVReader[T](r, delimiter)
	if err != nil {
		return nil, err
	}
	rows := NewList[T](100)
	for row := range reader.Rows() {
		rows.Add(row)
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
