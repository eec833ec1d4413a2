package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-billing-api/internal/domain/entity"
)

// Único punto de entrada para documentos de factura y producto leídos de cualquier almacén
// o recibidos por la API. Acepta camelCase, snake_case y minúsculas (productId, product_id,
// productid) y las variantes históricas de nombre; todo termina en la forma canónica del DTO.

// alias históricos (clave normalizada -> clave normalizada canónica) por tipo de documento.
var (
	billAliases = map[string]string{
		"invoiceid":  "id",
		"billid":     "id",
		"date":       "timestamp",
		"createdat":  "timestamp",
		"payment":    "paymentmethod",
		"gstnumber":  "gstin",
		"format":     "billformat",
		"grandtotal": "total",
		"discount":   "discountamount",
		"tax":        "taxamount",
		"taxrate":    "taxpercentage",
		"userid":     "createdby",
	}
	itemAliases = map[string]string{
		"id":            "productid",
		"name":          "productname",
		"unitprice":     "price",
		"linetotal":     "total",
		"taxpercentage": "gstrate",
		"taxrate":       "gstrate",
		"hsn":           "hsncode",
		"barcode":       "barcodes",
	}
	productAliases = map[string]string{
		"productid":    "id",
		"sellingprice": "price",
		"gstrate":      "taxpercentage",
		"taxrate":      "taxpercentage",
		"hsn":          "hsncode",
		"barcodes":     "barcode",
		"quantity":     "stock",
	}
)

// NormalizeKey reduce una clave a minúsculas sin separadores.
func NormalizeKey(k string) string {
	k = strings.ToLower(k)
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
}

// DecodeBill decodifica una factura cruda (map de JSON) a su forma canónica.
// Los campos planos customerName, customerPhone, customerEmail, customerAddress y customerId
// se pliegan en Customer cuando no viene el objeto anidado.
func DecodeBill(raw map[string]any) (*BillDTO, error) {
	m := canonical(raw, billAliases)
	foldCustomer(m)
	if items, ok := m["items"].([]any); ok {
		out := make([]any, 0, len(items))
		for _, it := range items {
			im, ok := it.(map[string]any)
			if !ok {
				return nil, errors.New("decode bill: línea con formato inválido")
			}
			im = canonical(im, nil)
			mergeBarcodes(im, "barcodes", "barcode")
			out = append(out, flattenItemProduct(canonical(im, itemAliases)))
		}
		m["items"] = out
	}
	var bill BillDTO
	if err := decode(m, &bill); err != nil {
		return nil, fmt.Errorf("decode bill: %w", err)
	}
	return &bill, nil
}

// DecodeProduct decodifica un producto crudo del espejo de documentos.
func DecodeProduct(raw map[string]any) (*ProductResponse, error) {
	m := canonical(raw, nil)
	mergeBarcodes(m, "barcode", "barcodes")
	var p ProductResponse
	if err := decode(canonical(m, productAliases), &p); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &p, nil
}

// ProductRawKey devuelve la clave con la que raw guarda el campo canónico field
// (normalizado, p. ej. "stock" guardado como "quantity"). ok es false si no está.
func ProductRawKey(raw map[string]any, field string) (key string, ok bool) {
	field = NormalizeKey(field)
	names := []string{field}
	for from, to := range productAliases {
		if to == field {
			names = append(names, from)
		}
	}
	for _, name := range names {
		for k := range raw {
			if NormalizeKey(k) == name {
				return k, true
			}
		}
	}
	return "", false
}

// DecodeBillDocument decodifica un documento JSON con una lista de facturas.
func DecodeBillDocument(data []byte) ([]*BillDTO, error) {
	raws, err := ParseRawList(data)
	if err != nil {
		return nil, err
	}
	out := make([]*BillDTO, 0, len(raws))
	for i, r := range raws {
		b, err := DecodeBill(r)
		if err != nil {
			return nil, fmt.Errorf("factura %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// DecodeProductDocument decodifica un documento JSON con una lista de productos.
func DecodeProductDocument(data []byte) ([]*ProductResponse, error) {
	raws, err := ParseRawList(data)
	if err != nil {
		return nil, err
	}
	out := make([]*ProductResponse, 0, len(raws))
	for i, r := range raws {
		p, err := DecodeProduct(r)
		if err != nil {
			return nil, fmt.Errorf("producto %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// ParseRawObject lee un objeto JSON conservando los números como json.Number.
func ParseRawObject(data []byte) (map[string]any, error) {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("json inválido: %w", err)
	}
	return m, nil
}

// ParseRawList lee un documento JSON con una lista de objetos conservando los números como json.Number.
// Un documento vacío es una lista vacía.
func ParseRawList(data []byte) ([]map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var list []map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("json inválido: %w", err)
	}
	return list, nil
}

// canonical normaliza claves y aplica alias. Si la clave canónica ya existe, el alias se descarta.
func canonical(raw map[string]any, aliases map[string]string) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[NormalizeKey(k)] = v
	}
	for from, to := range aliases {
		v, ok := out[from]
		if !ok {
			continue
		}
		if _, exists := out[to]; !exists {
			out[to] = v
		}
		delete(out, from)
	}
	return out
}

// mergeBarcodes une en keep los códigos de keep y other (texto con comas o arreglo).
func mergeBarcodes(m map[string]any, keep, other string) {
	v, ok := m[other]
	if !ok {
		return
	}
	delete(m, other)
	m[keep] = entity.NormalizeBarcodes(append(barcodeList(m[keep]), barcodeList(v)...)...)
}

// barcodeList aplana un valor crudo de códigos en sus partes.
func barcodeList(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return []string{x}
	case json.Number:
		return []string{x.String()}
	case []string:
		return x
	case []any:
		var out []string
		for _, e := range x {
			out = append(out, barcodeList(e)...)
		}
		return out
	}
	return []string{fmt.Sprint(v)}
}

func foldCustomer(m map[string]any) {
	if c, ok := m["customer"].(map[string]any); ok {
		m["customer"] = canonical(c, nil)
		return
	}
	c := map[string]any{}
	for _, f := range []string{"id", "name", "phone", "email", "address"} {
		if v, ok := m["customer"+f]; ok {
			c[f] = v
			delete(m, "customer"+f)
		}
	}
	if len(c) > 0 {
		m["customer"] = c
	}
}

// flattenItemProduct soporta líneas guardadas como {product: {...}, quantity}.
func flattenItemProduct(m map[string]any) map[string]any {
	p, ok := m["product"].(map[string]any)
	if !ok {
		return m
	}
	delete(m, "product")
	pc := canonical(p, nil)
	fill := map[string]string{"id": "productid", "name": "productname", "price": "price", "hsncode": "hsncode", "barcode": "barcodes"}
	for from, to := range fill {
		if _, exists := m[to]; exists {
			continue
		}
		if v, ok := pc[from]; ok {
			m[to] = v
		}
	}
	return m
}

func decode(input map[string]any, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			return NormalizeKey(mapKey) == NormalizeKey(fieldName)
		},
		DecodeHook: mapstructure.ComposeDecodeHookFunc(decimalHook, nullDecimalHook, timeHook, stringListHook),
		Result:     out,
	})
	if err != nil {
		return err
	}
	return d.Decode(input)
}

var (
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
	timeType        = reflect.TypeOf(time.Time{})
)

// stringListHook guarda un arreglo (p. ej. barcodes: ["111", "222"]) en un campo de texto
// como lista única, ordenada y separada por comas.
func stringListHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Slice {
		return data, nil
	}
	return entity.NormalizeBarcodes(barcodeList(data)...), nil
}

// nullDecimalHook: texto vacío es ausencia; cualquier número, incluido 0, es un valor presente.
func nullDecimalHook(from, to reflect.Type, data any) (any, error) {
	if to != nullDecimalType {
		return data, nil
	}
	if s, ok := data.(string); ok && strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	if nd, ok := data.(decimal.NullDecimal); ok {
		return nd, nil
	}
	d, err := decimalHook(from, decimalType, data)
	if err != nil {
		return nil, err
	}
	return decimal.NullDecimal{Decimal: d.(decimal.Decimal), Valid: true}, nil
}

func decimalHook(from, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case nil:
		return decimal.Zero, nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		if strings.TrimSpace(v) == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(strings.TrimSpace(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case decimal.Decimal:
		return v, nil
	}
	return nil, fmt.Errorf("no se puede convertir %T a decimal", data)
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}

func timeHook(from, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		if v == "" {
			return time.Time{}, nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("fecha %q con formato desconocido", v)
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("fecha %q: %w", v, err)
		}
		return time.UnixMilli(ms).UTC(), nil
	}
	return nil, fmt.Errorf("no se puede convertir %T a fecha", data)
}

// DecodeSettings decodifica la configuración guardada. Los nombres de formato se conservan tal cual.
func DecodeSettings(raw map[string]any) (*SettingsDTO, error) {
	var s SettingsDTO
	if err := decode(canonical(raw, map[string]string{"gstrate": "taxpercentage", "taxrate": "taxpercentage", "gstnumber": "gstin"}), &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}
