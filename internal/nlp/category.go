// Package nlp — category.go implementa el inferenciador de categoría
// de gasto.
//
// ============================================================
// TABLA ORDENADA + AHO-CORASICK
// ============================================================
//
// Las categorías no son mutuamente excluyentes a nivel de palabras
// clave, así que el orden de la tabla importa: la primera categoría
// con alguna coincidencia sombrea a las posteriores. Para no recorrer
// el texto una vez por palabra clave, todas las palabras se compilan
// en un único autómata Aho-Corasick que encuentra todas las
// coincidencias en una sola pasada; la prioridad se resuelve después
// eligiendo el índice de categoría más bajo entre las coincidencias.
package nlp

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// categoryTable es la tabla ordenada categoría → palabras clave.
// El orden debe preservarse exactamente: entradas anteriores sombrean
// a las posteriores.
var categoryTable = []struct {
	name     string
	keywords []string
}{
	{"Alimentación", []string{"comida", "restaurante", "super", "supermercado", "mercado", "despensa", "comestibles"}},
	{"Transporte", []string{"gasolina", "uber", "taxi", "transporte", "metro", "bus", "camión"}},
	{"Entretenimiento", []string{"cine", "teatro", "concierto", "diversión", "salida", "fiesta"}},
	{"Salud", []string{"doctor", "medicina", "farmacia", "hospital", "consulta", "médico"}},
	{"Servicios", []string{"luz", "agua", "internet", "teléfono", "celular", "netflix", "spotify"}},
	{"Educación", []string{"curso", "libro", "escuela", "universidad", "capacitación"}},
	{"Ropa", []string{"ropa", "zapatos", "vestuario", "calzado"}},
	{"Hogar", []string{"muebles", "decoración", "reparación", "mantenimiento"}},
}

// categoryMatcher es el autómata precompilado sobre todas las palabras
// clave de la tabla. keywordCategory mapea índice de patrón → índice
// de categoría en categoryTable.
var (
	categoryMatcher *ahocorasick.Matcher
	keywordCategory []int
)

func init() {
	var patterns [][]byte
	for ci, entry := range categoryTable {
		for _, kw := range entry.keywords {
			patterns = append(patterns, []byte(kw))
			keywordCategory = append(keywordCategory, ci)
		}
	}
	categoryMatcher = ahocorasick.NewMatcher(patterns)
}

// InferCategory infiere la categoría de gasto del texto. Devuelve nil
// cuando ninguna palabra clave coincide (se muestra como
// "Sin categoría"). Se asigna a lo más una categoría: la primera de la
// tabla con alguna coincidencia.
func InferCategory(text string) *string {
	hits := categoryMatcher.Match([]byte(strings.ToLower(text)))

	best := -1
	for _, h := range hits {
		if ci := keywordCategory[h]; best == -1 || ci < best {
			best = ci
		}
	}
	if best == -1 {
		return nil
	}

	name := categoryTable[best].name
	return &name
}
