package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/pos-billing-api/internal/application/dto"
	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// ProductsFile nombre del documento espejo del catálogo.
const ProductsFile = "products.json"

// formato de fechas escritas en el espejo; el decodificador lo lee como RFC 3339.
const mirrorTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var _ repository.ProductMirror = (*ProductMirror)(nil)

// ProductMirror espejo del catálogo en products.json.
// Cada modificación es una única lectura-modificación-escritura bajo el lock del archivo.
// Las entradas se editan como objetos crudos: solo se tocan las claves del cambio y se
// conservan las demás (category, sellingPrice, ...) con su nombre y formato originales.
type ProductMirror struct {
	file *File
}

// NewProductMirror construye el espejo en dir/products.json.
func NewProductMirror(dir string) *ProductMirror {
	return &ProductMirror{file: NewFile(filepath.Join(dir, ProductsFile))}
}

// ReadAll devuelve el catálogo completo.
func (m *ProductMirror) ReadAll(_ context.Context) ([]*entity.Product, error) {
	data, err := m.file.Load()
	if err != nil {
		return nil, err
	}
	docs, err := dto.DecodeProductDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ProductsFile, err)
	}
	out := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ToEntity())
	}
	return out, nil
}

// WriteAll deja el espejo igual a products, en ese orden. Las entradas que ya existían
// conservan sus claves extra; las que no están en products se eliminan.
func (m *ProductMirror) WriteAll(_ context.Context, products []*entity.Product) error {
	now := time.Now().UTC()
	return m.update(func(list []rawProduct) ([]rawProduct, error) {
		byID := make(map[string]rawProduct, len(list))
		for _, r := range list {
			id, err := r.id()
			if err != nil {
				return nil, err
			}
			byID[id] = r
		}
		out := make([]rawProduct, 0, len(products))
		for _, p := range products {
			r, ok := byID[p.ID]
			if !ok {
				r = rawProduct{}
			}
			r.patch(p, now)
			out = append(out, r)
		}
		return out, nil
	})
}

// GetByID devuelve nil, nil si no existe.
func (m *ProductMirror) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	all, err := m.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

// Upsert actualiza la entrada con el mismo ID o la agrega al final.
func (m *ProductMirror) Upsert(_ context.Context, product *entity.Product) error {
	now := time.Now().UTC()
	return m.update(func(list []rawProduct) ([]rawProduct, error) {
		for _, r := range list {
			id, err := r.id()
			if err != nil {
				return nil, err
			}
			if id == product.ID {
				r.patch(product, now)
				return list, nil
			}
		}
		r := rawProduct{}
		r.patch(product, now)
		return append(list, r), nil
	})
}

// Delete elimina el producto si existe.
func (m *ProductMirror) Delete(_ context.Context, id string) error {
	return m.update(func(list []rawProduct) ([]rawProduct, error) {
		out := list[:0]
		for _, r := range list {
			rid, err := r.id()
			if err != nil {
				return nil, err
			}
			if rid != id {
				out = append(out, r)
			}
		}
		return out, nil
	})
}

// DecrementStock resta las cantidades en una sola pasada bajo lock. Solo cambian stock y
// updatedAt de cada entrada. Los productos que no están en el espejo se ignoran; el stock
// puede quedar negativo.
func (m *ProductMirror) DecrementStock(_ context.Context, quantities map[string]int) error {
	if len(quantities) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return m.update(func(list []rawProduct) ([]rawProduct, error) {
		for _, r := range list {
			p, err := r.product()
			if err != nil {
				return nil, err
			}
			q, ok := quantities[p.ID]
			if !ok {
				continue
			}
			r.set("stock", "stock", p.Stock-q)
			r.touch(now)
		}
		return list, nil
	})
}

func (m *ProductMirror) update(fn func([]rawProduct) ([]rawProduct, error)) error {
	return m.file.Update(func(current []byte) ([]byte, error) {
		raws, err := dto.ParseRawList(current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ProductsFile, err)
		}
		list := make([]rawProduct, 0, len(raws))
		for _, r := range raws {
			list = append(list, rawProduct(r))
		}
		list, err = fn(list)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("serializar productos: %w", err)
		}
		return data, nil
	})
}

// rawProduct entrada de products.json tal como está guardada.
type rawProduct map[string]any

func (r rawProduct) product() (*entity.Product, error) {
	d, err := dto.DecodeProduct(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ProductsFile, err)
	}
	return d.ToEntity(), nil
}

func (r rawProduct) id() (string, error) {
	p, err := r.product()
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// set escribe field en la clave ya usada por la entrada o, si no tiene, en key.
func (r rawProduct) set(field, key string, v any) {
	if k, ok := dto.ProductRawKey(r, field); ok {
		key = k
	}
	r[key] = v
}

func (r rawProduct) unset(field string) {
	for {
		k, ok := dto.ProductRawKey(r, field)
		if !ok {
			return
		}
		delete(r, k)
	}
}

func (r rawProduct) touch(now time.Time) {
	r.set("updatedAt", "updatedAt", now.Format(mirrorTimeLayout))
}

// patch vuelca p sobre la entrada sin tocar claves ajenas al producto.
func (r rawProduct) patch(p *entity.Product, now time.Time) {
	r.set("id", "id", p.ID)
	r.set("name", "name", p.Name)
	r.set("price", "price", json.Number(p.Price.String()))
	r.setBarcode(p.Barcode)
	r.set("stock", "stock", p.Stock)
	if p.TaxPercentage.Valid {
		r.set("taxPercentage", "taxPercentage", json.Number(p.TaxPercentage.Decimal.String()))
	} else {
		r.unset("taxPercentage")
	}
	r.setText("hsnCode", "hsnCode", p.HSNCode)
	r.setText("batchId", "batchId", p.BatchID)
	if _, ok := dto.ProductRawKey(r, "createdAt"); !ok {
		created := p.CreatedAt
		if created.IsZero() {
			created = now
		}
		r["createdAt"] = created.UTC().Format(mirrorTimeLayout)
	}
	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = now
	}
	r.set("updatedAt", "updatedAt", updated.UTC().Format(mirrorTimeLayout))
}

// setText no agrega claves vacías que la entrada no tenía.
func (r rawProduct) setText(field, key, v string) {
	if _, ok := dto.ProductRawKey(r, field); !ok && v == "" {
		return
	}
	r.set(field, key, v)
}

// setBarcode respeta la forma guardada: texto con comas o arreglo.
func (r rawProduct) setBarcode(codes string) {
	key, ok := dto.ProductRawKey(r, "barcode")
	if !ok {
		if codes != "" {
			r["barcode"] = codes
		}
		return
	}
	_, wasList := r[key].([]any)
	r.unset("barcode")
	if !wasList {
		r[key] = codes
		return
	}
	list := []string{}
	if codes != "" {
		list = strings.Split(codes, ",")
	}
	r[key] = list
}
