package pcl

import (
	"context"
	"fmt"

	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
	"github.com/pclgo/pcl-go/pkg/pcl/logging"
)

// PCDFormat selects how the DATA section of a PCD file is encoded.
type PCDFormat int

const (
	PCDBinary PCDFormat = iota
	PCDASCII
)

func (f PCDFormat) String() string {
	switch f {
	case PCDBinary:
		return "binary"
	case PCDASCII:
		return "ascii"
	}
	return fmt.Sprintf("PCDFormat(%d)", int(f))
}

func (f PCDFormat) native() (backend.PCDFormat, error) {
	switch f {
	case PCDBinary:
		return backend.PCDBinary, nil
	case PCDASCII:
		return backend.PCDASCII, nil
	}
	return 0, fmt.Errorf("pcl: unknown PCD format %d", int(f))
}

// LoadPointCloud reads the PCD file at path into a new cloud. Fields are
// matched by name; fields of P the file lacks are zero. No cloud is returned
// on failure.
func LoadPointCloud[P Point](path string) (*PointCloud[P], error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	c, err := NewPointCloud[P]()
	if err != nil {
		return nil, err
	}
	if err := LoadPCD[P](path, c); err != nil {
		c.Release()
		return nil, err
	}
	return c, nil
}

// LoadPCD reads the PCD file at path into c, replacing its contents. c is
// left unchanged on failure.
func LoadPCD[P Point](path string, c Cloud[P]) error {
	if path == "" {
		return ErrEmptyPath
	}
	obj, err := c.cloudRef().get()
	if err != nil {
		return err
	}
	if err := backend.LoadPCD(path, obj); err != nil {
		return remapError(err)
	}
	logIO("pcl: loaded pcd", path, obj)
	return nil
}

// SavePCD writes c to path in the given format. An empty cloud is an error.
func SavePCD[P Point](path string, c Cloud[P], format PCDFormat) error {
	if path == "" {
		return ErrEmptyPath
	}
	nf, err := format.native()
	if err != nil {
		return err
	}
	obj, err := c.cloudRef().get()
	if err != nil {
		return err
	}
	if err := backend.SavePCD(path, obj, nf); err != nil {
		return remapError(err)
	}
	logIO("pcl: saved pcd", path, obj, "format", format.String())
	return nil
}

// SavePointCloud writes c in the format configured with Configure.
func SavePointCloud[P Point](path string, c Cloud[P]) error {
	return SavePCD(path, c, options().PCDFormat)
}

func logIO(msg, path string, obj backend.Object, args ...any) {
	n, _ := backend.CloudSize(obj)
	w, h, _ := backend.CloudDims(obj)
	args = append([]any{"path", path, logging.Cloud("cloud", n, w, h)}, args...)
	logger().Debug(context.Background(), msg, args...)
}
