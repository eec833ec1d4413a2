package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
	"github.com/jhoicas/pos-billing-api/internal/domain/repository"
)

// ProductsCollection colección del espejo de productos.
const ProductsCollection = "products"

var _ repository.ProductMirror = (*ProductMirror)(nil)

// ProductMirror espejo del catálogo en MongoDB. El descuento de stock es un $inc por
// producto en el servidor, sin lectura previa.
type ProductMirror struct {
	coll *mongo.Collection
}

// NewProductMirror construye el espejo sobre database.products.
func NewProductMirror(client *mongo.Client, database string) *ProductMirror {
	return &ProductMirror{coll: client.Database(database).Collection(ProductsCollection)}
}

type productDoc struct {
	ID            string               `bson:"_id"`
	Name          string               `bson:"name"`
	Price         primitive.Decimal128 `bson:"price"`
	Barcode       string               `bson:"barcode,omitempty"`
	Stock         int64                `bson:"stock"`
	TaxPercentage *primitive.Decimal128 `bson:"tax_percentage,omitempty"`
	HSNCode       string               `bson:"hsn_code,omitempty"`
	BatchID       string               `bson:"batch_id,omitempty"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

func toDoc(p *entity.Product) (productDoc, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDoc{}, fmt.Errorf("precio %s: %w", p.ID, err)
	}
	var tax *primitive.Decimal128
	if p.TaxPercentage.Valid {
		v, err := primitive.ParseDecimal128(p.TaxPercentage.Decimal.String())
		if err != nil {
			return productDoc{}, fmt.Errorf("tasa %s: %w", p.ID, err)
		}
		tax = &v
	}
	return productDoc{
		ID:            p.ID,
		Name:          p.Name,
		Price:         price,
		Barcode:       p.Barcode,
		Stock:         int64(p.Stock),
		TaxPercentage: tax,
		HSNCode:       p.HSNCode,
		BatchID:       p.BatchID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func fromDoc(d productDoc) (*entity.Product, error) {
	price, err := decimalFrom128(d.Price)
	if err != nil {
		return nil, fmt.Errorf("precio %s: %w", d.ID, err)
	}
	var tax decimal.NullDecimal
	if d.TaxPercentage != nil {
		v, err := decimalFrom128(*d.TaxPercentage)
		if err != nil {
			return nil, fmt.Errorf("tasa %s: %w", d.ID, err)
		}
		tax = decimal.NullDecimal{Decimal: v, Valid: true}
	}
	return &entity.Product{
		ID:            d.ID,
		Name:          d.Name,
		Price:         price,
		Barcode:       d.Barcode,
		Stock:         int(d.Stock),
		TaxPercentage: tax,
		HSNCode:       d.HSNCode,
		BatchID:       d.BatchID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func decimalFrom128(v primitive.Decimal128) (decimal.Decimal, error) {
	if v.IsZero() {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v.String())
}

// ReadAll devuelve el catálogo ordenado por nombre.
func (m *ProductMirror) ReadAll(ctx context.Context) ([]*entity.Product, error) {
	cur, err := m.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo find products: %w", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo decode products: %w", err)
	}
	out := make([]*entity.Product, 0, len(docs))
	for _, d := range docs {
		p, err := fromDoc(d)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// WriteAll deja la colección igual a products: reemplaza o inserta cada uno y borra el resto.
func (m *ProductMirror) WriteAll(ctx context.Context, products []*entity.Product) error {
	ids := make([]string, 0, len(products))
	models := make([]mongo.WriteModel, 0, len(products)+1)
	for _, p := range products {
		doc, err := toDoc(p)
		if err != nil {
			return err
		}
		ids = append(ids, p.ID)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	models = append(models, mongo.NewDeleteManyModel().SetFilter(bson.M{"_id": bson.M{"$nin": ids}}))
	if _, err := m.coll.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("mongo write products: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (m *ProductMirror) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var d productDoc
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find product: %w", err)
	}
	return fromDoc(d)
}

// Upsert reemplaza o inserta el producto.
func (m *ProductMirror) Upsert(ctx context.Context, product *entity.Product) error {
	doc, err := toDoc(product)
	if err != nil {
		return err
	}
	_, err = m.coll.ReplaceOne(ctx, bson.M{"_id": product.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert product: %w", err)
	}
	return nil
}

// Delete elimina el producto si existe.
func (m *ProductMirror) Delete(ctx context.Context, id string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo delete product: %w", err)
	}
	return nil
}

// DecrementStock un $inc por producto en un único BulkWrite no ordenado.
// Los productos inexistentes no se crean.
func (m *ProductMirror) DecrementStock(ctx context.Context, quantities map[string]int) error {
	models := decrementModels(quantities)
	if len(models) == 0 {
		return nil
	}
	if _, err := m.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("mongo decrement stock: %w", err)
	}
	return nil
}

func decrementModels(quantities map[string]int) []mongo.WriteModel {
	models := make([]mongo.WriteModel, 0, len(quantities))
	now := time.Now().UTC()
	for id, q := range quantities {
		if id == "" || q == 0 {
			continue
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{
				"$inc": bson.M{"stock": -int64(q)},
				"$set": bson.M{"updated_at": now},
			}))
	}
	return models
}
