package menu

import (
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/xenking/menucart/internal/domain/catalog"
)

// Load reads a catalog file from disk. Files with a .gz suffix are
// transparently decompressed. The accepted formats are the menu db.json
// shape (an object with a "foodItems" array) or a bare item array.
func Load(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	s, err := Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return s, nil
}

// Parse decodes a catalog from r and validates it.
func Parse(r io.Reader) (*Static, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}

	var items []catalog.Item
	d := jx.DecodeBytes(data)

	appendItem := func(d *jx.Decoder) error {
		it, err := decodeItem(d)
		if err != nil {
			return errors.Wrapf(err, "item %d", len(items))
		}
		items = append(items, it)
		return nil
	}

	switch d.Next() {
	case jx.Array:
		err = d.Arr(appendItem)
	case jx.Object:
		err = d.Obj(func(d *jx.Decoder, key string) error {
			if key != "foodItems" {
				return d.Skip()
			}
			return d.Arr(appendItem)
		})
	default:
		return nil, errors.Errorf("unexpected top-level token %v", d.Next())
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}

	return NewStatic(items)
}

func decodeItem(d *jx.Decoder) (catalog.Item, error) {
	var it catalog.Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			it.ID, err = decodeID(d)
		case "name":
			it.Name, err = d.Str()
		case "category":
			it.Category, err = d.Str()
		case "subCategory":
			it.SubCategory, err = d.Str()
		case "price":
			err = decodeDecimal(d, &it.Price)
		case "discountPrice":
			if d.Next() == jx.Null {
				return d.Null()
			}
			err = decodeDecimal(d, &it.DiscountPrice)
		case "tag":
			it.Tag, err = d.Str()
		case "image":
			it.Image, err = d.Str()
		case "description":
			it.Description, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return it, err
}

// decodeID accepts both string and numeric identifiers; db.json menus
// commonly use bare numbers.
func decodeID(d *jx.Decoder) (string, error) {
	switch d.Next() {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		return "", errors.Errorf("unexpected id token %v", d.Next())
	}
}

func decodeDecimal(d *jx.Decoder, dst *decimal.Decimal) error {
	n, err := d.Num()
	if err != nil {
		return err
	}
	v, err := decimal.NewFromString(n.String())
	if err != nil {
		return errors.Wrapf(err, "parse number %q", n.String())
	}
	*dst = v
	return nil
}
