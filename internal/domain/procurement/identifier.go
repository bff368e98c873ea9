// Package procurement contiene las reglas de las solicitudes de compra: generación de
// identificadores, ítems, asistente de borrador y ciclo de vida.
package procurement

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/supply-tracker/internal/domain/entity"
)

// RequestIDPrefix prefijo fijo de los IDs de solicitud.
const RequestIDPrefix = "REQ-"

// NextRequestID toma el máximo sufijo numérico de los IDs REQ- existentes y suma uno.
// IDs con otro formato se ignoran. No rellena huecos dejados por eliminaciones.
func NextRequestID(requests []*entity.Request) string {
	max := 0
	for _, r := range requests {
		if r == nil || !strings.HasPrefix(r.ID, RequestIDPrefix) {
			continue
		}
		suffix := strings.TrimPrefix(r.ID, RequestIDPrefix)
		if !isDigits(suffix) {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", RequestIDPrefix, max+1)
}

// NextPONumber cuenta los números de PO con el prefijo YYYY-MM del mes de now y
// agrega una secuencia de 3 dígitos. La secuencia se reinicia sola al cambiar el mes.
func NextPONumber(requests []*entity.Request, now time.Time) string {
	prefix := now.Format("2006-01")
	count := 0
	for _, r := range requests {
		if r != nil && strings.HasPrefix(r.PONumber, prefix+"-") {
			count++
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, count+1)
}

// isDigits: solo dígitos ASCII, sin signo ni espacios.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
