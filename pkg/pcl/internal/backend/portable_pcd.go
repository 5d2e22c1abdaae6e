//go:build !cgo || !pcl

package backend

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/seqsense/pcgol/pc"
)

// pcdField is one FIELDS entry of a PCD header. Offsets are into the packed
// on-disk record.
type pcdField struct {
	name   string
	size   int
	kind   byte
	count  int
	offset int
}

func (f pcdField) datatype() (Datatype, bool) {
	switch {
	case f.kind == 'F' && f.size == 4:
		return Float32, true
	case f.kind == 'F' && f.size == 8:
		return Float64, true
	case f.kind == 'U' && f.size == 1:
		return Uint8, true
	case f.kind == 'U' && f.size == 2:
		return Uint16, true
	case f.kind == 'U' && f.size == 4:
		return Uint32, true
	case f.kind == 'I' && f.size == 1:
		return Int8, true
	case f.kind == 'I' && f.size == 2:
		return Int16, true
	case f.kind == 'I' && f.size == 4:
		return Int32, true
	}
	return 0, false
}

func typeLetter(d Datatype) byte {
	switch d {
	case Int8, Int16, Int32:
		return 'I'
	case Uint8, Uint16, Uint32:
		return 'U'
	}
	return 'F'
}

type pcdHeader struct {
	fields []pcdField
	width  uint32
	height uint32
	points int
	data   string
	record int
	values int
}

func readHeader(r *bufio.Reader) (*pcdHeader, error) {
	h := &pcdHeader{height: 1, points: -1}
	var sizes, counts []int
	var kinds []byte
	for {
		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return nil, fmt.Errorf("header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tok := strings.Fields(line)
		key, vals := strings.ToUpper(tok[0]), tok[1:]
		switch key {
		case "VERSION", "VIEWPOINT":
		case "FIELDS":
			for _, v := range vals {
				h.fields = append(h.fields, pcdField{name: v})
			}
		case "SIZE":
			if sizes, err = atois(vals); err != nil {
				return nil, fmt.Errorf("SIZE: %w", err)
			}
		case "TYPE":
			for _, v := range vals {
				if len(v) != 1 {
					return nil, fmt.Errorf("TYPE: bad entry %q", v)
				}
				kinds = append(kinds, v[0])
			}
		case "COUNT":
			if counts, err = atois(vals); err != nil {
				return nil, fmt.Errorf("COUNT: %w", err)
			}
		case "WIDTH", "HEIGHT", "POINTS":
			if len(vals) != 1 {
				return nil, fmt.Errorf("%s: want one value", key)
			}
			n, err := strconv.ParseUint(vals[0], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			switch key {
			case "WIDTH":
				h.width = uint32(n)
			case "HEIGHT":
				h.height = uint32(n)
			default:
				h.points = int(n)
			}
		case "DATA":
			if len(vals) != 1 {
				return nil, fmt.Errorf("DATA: want one value")
			}
			h.data = strings.ToLower(vals[0])
			return h, h.finish(sizes, kinds, counts)
		default:
			return nil, fmt.Errorf("unknown header entry %q", tok[0])
		}
	}
}

func (h *pcdHeader) finish(sizes []int, kinds []byte, counts []int) error {
	if len(h.fields) == 0 {
		return fmt.Errorf("no FIELDS")
	}
	if len(sizes) != len(h.fields) || len(kinds) != len(h.fields) {
		return fmt.Errorf("FIELDS, SIZE and TYPE disagree")
	}
	if counts != nil && len(counts) != len(h.fields) {
		return fmt.Errorf("FIELDS and COUNT disagree")
	}
	for i := range h.fields {
		f := &h.fields[i]
		f.size, f.kind, f.count = sizes[i], kinds[i], 1
		if counts != nil {
			f.count = counts[i]
		}
		if _, ok := f.datatype(); !ok {
			return fmt.Errorf("field %s: unsupported type %c%d", f.name, f.kind, f.size)
		}
		if f.count < 1 {
			return fmt.Errorf("field %s: COUNT %d", f.name, f.count)
		}
		size, ok := mulSize(f.size, f.count)
		if !ok || size > math.MaxInt32-h.record {
			return fmt.Errorf("field %s: record size overflows", f.name)
		}
		f.offset = h.record
		h.record += size
		h.values += f.count
	}
	n, ok := mulSize(int(h.width), int(h.height))
	if !ok {
		return fmt.Errorf("WIDTH*HEIGHT overflows")
	}
	if h.points < 0 {
		h.points = n
	}
	if h.points != n {
		return fmt.Errorf("POINTS %d but WIDTH*HEIGHT is %d", h.points, n)
	}
	return nil
}

func atois(vals []string) ([]int, error) {
	out := make([]int, len(vals))
	for i, v := range vals {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// LoadPCD reads a PCD v0.7 file into o. Fields are matched by name; fields
// of o absent from the file are zeroed. o is left untouched on failure.
func LoadPCD(path string, o Object) error {
	const op = "loadPCDFile"
	dst, err := cloudOf(op, o)
	if err != nil {
		return err
	}
	if path == "" {
		return nativeErr(op, CodeEmpty, "empty path")
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return nativeErr(op, CodeIO, "%v", err)
	}

	br := bytes.NewReader(file)
	r := bufio.NewReader(br)
	h, err := readHeader(r)
	if err != nil {
		return nativeErr(op, CodeIO, "%s: %v", path, err)
	}
	records, err := h.decode(r, br.Len()+r.Buffered(), file)
	if err != nil {
		return nativeErr(op, CodeIO, "%s: %v", path, err)
	}

	tmp, err := newSizedCloud(op, dst.layout, h.width, h.height)
	if err != nil {
		return err
	}
	for _, lf := range dst.layout.Fields {
		var ff *pcdField
		for i := range h.fields {
			if h.fields[i].name == lf.Name || (packedColor(lf.Name) && packedColor(h.fields[i].name)) {
				ff = &h.fields[i]
				break
			}
		}
		if ff == nil {
			continue
		}
		fdt, _ := ff.datatype()
		n := min(lf.Count, ff.count)
		for p := range h.points {
			src := records[p*h.record+ff.offset:]
			dstb := tmp.data[p*tmp.layout.Size+lf.Offset:]
			for k := range n {
				s := src[k*ff.size : (k+1)*ff.size]
				d := dstb[k*lf.Datatype.Size() : (k+1)*lf.Datatype.Size()]
				if fdt == lf.Datatype || (packedColor(lf.Name) && ff.size == lf.Datatype.Size()) {
					copy(d, s)
				} else {
					putScalar(d, lf.Datatype, getScalar(s, fdt))
				}
			}
		}
	}
	if fx, fy, fz, ok := tmp.xyz(); ok {
		for i := range tmp.size() {
			if !tmp.finite(i, fx, fy, fz) {
				tmp.dense = false
				break
			}
		}
	}
	dst.data, dst.width, dst.height, dst.dense = tmp.data, tmp.width, tmp.height, tmp.dense
	return nil
}

// lzfMaxExpansion is the largest output/input ratio of an LZF stream: a
// three byte back reference expands to at most 264 bytes.
const lzfMaxExpansion = 88

// decode returns the packed records of the DATA section. remaining is the
// number of unread bytes after the header. Sizes claimed by the header are
// checked against it before anything is allocated.
func (h *pcdHeader) decode(r *bufio.Reader, remaining int, file []byte) ([]byte, error) {
	n, ok := mulSize(h.points, h.record)
	if !ok {
		return nil, fmt.Errorf("%d points of %d bytes overflow", h.points, h.record)
	}
	switch h.data {
	case "ascii":
		// Every value takes at least one character.
		if vals, ok := mulSize(h.points, h.values); !ok || vals > remaining {
			return nil, fmt.Errorf("%d points do not fit in %d bytes of data", h.points, remaining)
		}
		records := make([]byte, n)
		return records, readASCII(r, h, records)
	case "binary":
		if n > remaining {
			return nil, fmt.Errorf("need %d bytes of data, have %d", n, remaining)
		}
	case "binary_compressed":
		sizes, err := r.Peek(8)
		if err != nil {
			return nil, fmt.Errorf("compressed sizes: %w", err)
		}
		packed := int(binary.LittleEndian.Uint32(sizes[:4]))
		unpacked := int(binary.LittleEndian.Uint32(sizes[4:]))
		switch {
		case unpacked != n:
			return nil, fmt.Errorf("compressed block holds %d bytes, want %d", unpacked, n)
		case packed > remaining-8:
			return nil, fmt.Errorf("compressed block of %d bytes, have %d", packed, remaining-8)
		case n > packed*lzfMaxExpansion:
			return nil, fmt.Errorf("%d compressed bytes cannot hold %d", packed, n)
		}
	default:
		return nil, fmt.Errorf("unsupported DATA %s", h.data)
	}

	pp, err := pc.Unmarshal(bytes.NewReader(file))
	if err != nil {
		return nil, err
	}
	if pp.Points != h.points || len(pp.Data) != n {
		return nil, fmt.Errorf("decoded %d points in %d bytes, want %d in %d", pp.Points, len(pp.Data), h.points, n)
	}
	return pp.Data, nil
}

func readASCII(r *bufio.Reader, h *pcdHeader, records []byte) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	p := 0
	for p < h.points && sc.Scan() {
		tok := strings.Fields(sc.Text())
		if len(tok) == 0 {
			continue
		}
		rec := records[p*h.record : (p+1)*h.record]
		t := 0
		for _, f := range h.fields {
			dt, _ := f.datatype()
			for k := range f.count {
				if t >= len(tok) {
					return fmt.Errorf("point %d: too few values", p)
				}
				b := rec[f.offset+k*f.size : f.offset+(k+1)*f.size]
				if err := parseScalar(b, dt, f.name, tok[t]); err != nil {
					return fmt.Errorf("point %d field %s: %w", p, f.name, err)
				}
				t++
			}
		}
		p++
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if p != h.points {
		return fmt.Errorf("read %d of %d points", p, h.points)
	}
	return nil
}

// packedColor reports fields that hold packed color bits in a float slot.
func packedColor(name string) bool { return name == "rgb" || name == "rgba" }

func parseScalar(b []byte, dt Datatype, name, s string) error {
	switch dt {
	case Float32:
		if packedColor(name) {
			if u, err := strconv.ParseUint(s, 10, 32); err == nil {
				binary.NativeEndian.PutUint32(b, uint32(u))
				return nil
			}
		}
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		binary.NativeEndian.PutUint32(b, math.Float32bits(float32(v)))
	case Float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		binary.NativeEndian.PutUint64(b, math.Float64bits(v))
	case Uint8, Uint16, Uint32:
		v, err := strconv.ParseUint(s, 10, dt.Size()*8)
		if err != nil {
			return err
		}
		putScalar(b, dt, float64(v))
	default:
		v, err := strconv.ParseInt(s, 10, dt.Size()*8)
		if err != nil {
			return err
		}
		putScalar(b, dt, float64(v))
	}
	return nil
}

func getScalar(b []byte, dt Datatype) float64 {
	switch dt {
	case Int8:
		return float64(int8(b[0]))
	case Uint8:
		return float64(b[0])
	case Int16:
		return float64(int16(binary.NativeEndian.Uint16(b)))
	case Uint16:
		return float64(binary.NativeEndian.Uint16(b))
	case Int32:
		return float64(int32(binary.NativeEndian.Uint32(b)))
	case Uint32:
		return float64(binary.NativeEndian.Uint32(b))
	case Float32:
		return float64(math.Float32frombits(binary.NativeEndian.Uint32(b)))
	}
	return math.Float64frombits(binary.NativeEndian.Uint64(b))
}

func putScalar(b []byte, dt Datatype, v float64) {
	switch dt {
	case Int8:
		b[0] = byte(int8(v))
	case Uint8:
		b[0] = byte(v)
	case Int16:
		binary.NativeEndian.PutUint16(b, uint16(int16(v)))
	case Uint16:
		binary.NativeEndian.PutUint16(b, uint16(v))
	case Int32:
		binary.NativeEndian.PutUint32(b, uint32(int32(v)))
	case Uint32:
		binary.NativeEndian.PutUint32(b, uint32(v))
	case Float32:
		binary.NativeEndian.PutUint32(b, math.Float32bits(float32(v)))
	case Float64:
		binary.NativeEndian.PutUint64(b, math.Float64bits(v))
	}
}

func formatScalar(b []byte, dt Datatype, name string) string {
	switch dt {
	case Float32:
		bits := binary.NativeEndian.Uint32(b)
		if packedColor(name) {
			return strconv.FormatUint(uint64(bits), 10)
		}
		v := math.Float32frombits(bits)
		if math.IsNaN(float64(v)) {
			return "nan"
		}
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case Float64:
		v := math.Float64frombits(binary.NativeEndian.Uint64(b))
		if math.IsNaN(v) {
			return "nan"
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case Int8, Int16, Int32:
		return strconv.FormatInt(int64(getScalar(b, dt)), 10)
	}
	return strconv.FormatUint(uint64(getScalar(b, dt)), 10)
}

// SavePCD writes o to path as a PCD v0.7 file.
func SavePCD(path string, o Object, format PCDFormat) error {
	const op = "savePCDFile"
	c, err := cloudOf(op, o)
	if err != nil {
		return err
	}
	if path == "" {
		return nativeErr(op, CodeEmpty, "empty path")
	}
	if c.size() == 0 {
		return nativeErr(op, CodeEmpty, "input point cloud has no data")
	}
	if format != PCDASCII && format != PCDBinary {
		return nativeErr(op, CodeRange, "unknown format %d", format)
	}
	f, err := os.Create(path)
	if err != nil {
		return nativeErr(op, CodeIO, "%v", err)
	}
	w := bufio.NewWriter(f)
	if err := writePCD(w, c, format); err != nil {
		f.Close()
		return nativeErr(op, CodeIO, "%s: %v", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return nativeErr(op, CodeIO, "%s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		return nativeErr(op, CodeIO, "%s: %v", path, err)
	}
	return nil
}

func writePCD(w *bufio.Writer, c *cloud, format PCDFormat) error {
	fields := c.layout.Fields
	names := make([]string, len(fields))
	sizes := make([]string, len(fields))
	kinds := make([]string, len(fields))
	counts := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		sizes[i] = strconv.Itoa(f.Datatype.Size())
		kinds[i] = string(typeLetter(f.Datatype))
		counts[i] = strconv.Itoa(f.Count)
	}
	data := "ascii"
	if format == PCDBinary {
		data = "binary"
	}
	width, height := c.width, c.height
	if int(width)*int(height) != c.size() {
		width, height = uint32(c.size()), 1
	}
	if _, err := fmt.Fprintf(w, "# .PCD v0.7 - Point Cloud Data file format\n"+
		"VERSION 0.7\n"+
		"FIELDS %s\n"+
		"SIZE %s\n"+
		"TYPE %s\n"+
		"COUNT %s\n"+
		"WIDTH %d\n"+
		"HEIGHT %d\n"+
		"VIEWPOINT 0 0 0 1 0 0 0\n"+
		"POINTS %d\n"+
		"DATA %s\n",
		strings.Join(names, " "), strings.Join(sizes, " "), strings.Join(kinds, " "),
		strings.Join(counts, " "), width, height, c.size(), data); err != nil {
		return err
	}

	for i := range c.size() {
		pt := c.point(i)
		var vals []string
		for _, f := range fields {
			n := f.Datatype.Size()
			for k := range f.Count {
				b := pt[f.Offset+k*n : f.Offset+(k+1)*n]
				if format == PCDBinary {
					if _, err := w.Write(b); err != nil {
						return err
					}
					continue
				}
				vals = append(vals, formatScalar(b, f.Datatype, f.Name))
			}
		}
		if format == PCDASCII {
			if _, err := w.WriteString(strings.Join(vals, " ") + "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
