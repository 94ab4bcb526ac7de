package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/rechargbatt/backend/internal/model"
	"github.com/rechargbatt/backend/pkg/whatsapp"
)

// Notifier forwards a human-readable summary of a new request to the
// operator. Dispatch is best-effort, at-most-once: failures are folded
// into the Result and never abort the intake that triggered them.
type Notifier interface {
	NotifyNewRequest(ctx context.Context, req *model.Request) whatsapp.Result
}

// whatsappNotifier sends summaries to a fixed operator number over the
// WhatsApp Cloud API.
type whatsappNotifier struct {
	client whatsapp.Client
	// operatorTo is the admin's WhatsApp number in international format.
	operatorTo string
}

// NewWhatsAppNotifier creates a Notifier delivering to operatorTo through
// the given client.
func NewWhatsAppNotifier(client whatsapp.Client, operatorTo string) Notifier {
	return &whatsappNotifier{client: client, operatorTo: operatorTo}
}

// NotifyNewRequest formats and sends the operator summary. Any failure
// (missing credentials, transport error, provider rejection) is returned
// as a non-OK Result.
func (n *whatsappNotifier) NotifyNewRequest(ctx context.Context, req *model.Request) whatsapp.Result {
	if n.operatorTo == "" {
		slog.Error("whatsapp dispatch skipped", "error", "ADMIN_WHATSAPP_TO is not configured")
		return whatsapp.Result{OK: false, Error: "operator recipient not configured"}
	}

	text := buildSummary(req)

	result, err := n.client.SendText(ctx, n.operatorTo, text)
	if err != nil {
		slog.Error("whatsapp dispatch failed", "request_id", req.ID, "error", err)
		return whatsapp.Result{OK: false, Error: err.Error()}
	}
	if !result.OK {
		slog.Warn("whatsapp dispatch rejected", "request_id", req.ID,
			"status", result.Status, "error", result.Error)
	}
	return result
}

// buildSummary composes the operator-facing message for a request.
func buildSummary(req *model.Request) string {
	var label string
	switch req.RequestType {
	case model.TypeUrgence:
		label = "🚨 URGENCE (Jump start)"
	case model.TypeRegeneration:
		label = "🔋 RÉGÉNÉRATION batterie"
	default:
		label = fmt.Sprintf("📩 DEMANDE (%s)", req.RequestType)
	}

	name := req.FullName
	if name == "" {
		name = "client"
	}

	lines := []string{
		label,
		"",
		"Nom: " + name,
		"Tel: " + req.Phone,
		"Quartier: " + req.Quartier,
	}
	if req.Message != "" {
		lines = append(lines, "Message: "+req.Message)
	}
	if req.Price != nil {
		lines = append(lines, "Prix: "+strconv.FormatFloat(*req.Price, 'f', -1, 64)+" FCFA")
	}
	lines = append(lines, infoLines(req.Info)...)

	id := req.ID
	if id == "" {
		id = "n/a"
	}
	lines = append(lines, "", "ID: "+id)

	return strings.Join(lines, "\n")
}

// infoLines renders the free-form form extras (battery specs, symptoms,
// desired date/time) as "key: value" lines in stable key order.
func infoLines(info map[string]any) []string {
	if len(info) == 0 {
		return nil
	}
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+formatInfoValue(info[k]))
	}
	return lines
}

func formatInfoValue(v any) string {
	if list, ok := v.([]any); ok {
		parts := make([]string, len(list))
		for i, item := range list {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
