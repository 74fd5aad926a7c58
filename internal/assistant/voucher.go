package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nochelabs/botilleria/pkg/rut"
)

const voucherInstruction = `Analiza este comprobante de transferencia bancaria. Extrae los siguientes datos y formatéalos en un texto muy breve y claro para enviar por WhatsApp: Banco de origen, Banco de destino, Monto transferido, Fecha/Hora y Número de operación o Folio. Si no parece un comprobante, dilo.`

const (
	voucherFallbackEmpty = "No pude leer el comprobante automáticamente."
	voucherFallbackError = "Error al analizar la imagen con IA."
)

// VoucherResult is the outcome of a transfer receipt analysis. Text is
// embedded verbatim into the order message; the RUT fields are best-effort
// (first RUT-shaped substring wins, validated by checksum).
type VoucherResult struct {
	Text     string `json:"text"`
	RUT      string `json:"rut,omitempty"`
	RUTValid bool   `json:"rut_valid"`
}

// AnalyzeVoucher runs the image through the generator and scans the returned
// text for a RUT. It never fails; service errors yield the fallback text.
func AnalyzeVoucher(ctx context.Context, gen Generator, image []byte) VoucherResult {
	text, err := gen.AnalyzeImage(ctx, image, voucherInstruction)
	switch {
	case err != nil:
		zap.L().Warn("assistant: voucher analysis failed", zap.Error(err))
		return VoucherResult{Text: voucherFallbackError}
	case strings.TrimSpace(text) == "":
		return VoucherResult{Text: voucherFallbackEmpty}
	}

	res := VoucherResult{Text: text}
	if found, ok := rut.Extract(text); ok {
		res.RUT = rut.Format(found)
		res.RUTValid = rut.Validate(found)
	}
	return res
}
