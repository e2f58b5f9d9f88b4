package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/diewo77/snack-manager/internal/models"
)

// RenderTicket renders an order into the printable thermal-receipt document
// (80mm paper). Pure: it touches no store and depends only on its inputs.

var frenchLongMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}

// FormatEuro renders an amount the French way: two decimals, comma separator,
// trailing euro sign ("14,00 €").
func FormatEuro(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1) + " €"
}

type ticketLine struct {
	Quantity int
	Name     string
	Total    string
}

type ticketData struct {
	Title          string
	RestaurantName string
	PrintedAt      string
	TypeBadge      string
	OrderID        string
	CustomerName   string
	PhoneNumber    string
	Address        string
	Notes          string
	Lines          []ticketLine
	Total          string
	Status         string
}

var ticketTmpl = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<style>
    @page { size: 80mm auto; margin: 0; }
    body {
        font-family: 'Courier New', monospace;
        width: 100%; margin: 0; padding: 5px; box-sizing: border-box;
        color: black; background: white;
        font-size: 14px; line-height: 1.1; text-align: center;
    }
    .header { text-align: center; margin-bottom: 5px; border-bottom: 2px solid black; padding-bottom: 5px; }
    .header h1 { font-size: 20px; margin: 0; text-transform: uppercase; font-weight: 900; }
    .header p { margin: 2px 0 0 0; font-size: 12px; }
    .type-badge { text-align: center; font-size: 18px; font-weight: 900; border: 2px solid black; padding: 4px; margin: 10px 0; text-transform: uppercase; }
    .order-info { text-align: left; margin-bottom: 10px; font-size: 14px; }
    .order-info strong { font-weight: 900; font-size: 16px; display: block; margin-bottom: 2px; }
    .notes { margin-bottom: 15px; padding: 5px; border: 1px solid black; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 10px; font-size: 14px; text-align: left; }
    th { text-align: left; border-bottom: 1px solid black; padding-bottom: 2px; font-size: 14px; font-weight: 900; }
    td { padding: 2px 0; vertical-align: top; }
    .qty { width: 15%; font-weight: 900; }
    .item { width: 55%; font-weight: bold; }
    .price { width: 30%; text-align: right; font-weight: 900; }
    .total-section { border-top: 2px dashed black; padding-top: 5px; margin-top: 5px; text-align: right; }
    .total-line { font-size: 20px; font-weight: 900; margin-top: 2px; }
    .status-line { font-size: 12px; margin-top: 5px; }
    .footer { text-align: center; margin-top: 15px; font-size: 12px; border-top: 1px solid black; padding-top: 5px; }
    .cut-line { border-bottom: 1px dashed black; margin-top: 15px; text-align: center; font-size: 10px; padding-bottom: 2px; }
</style>
</head>
<body>
<div class="header">
    <h1>{{.RestaurantName}}</h1>
    <p>{{.PrintedAt}}</p>
</div>
<div class="type-badge">{{.TypeBadge}}</div>
<div class="order-info">
    <strong>Commande #{{.OrderID}}</strong>
    Client: {{.CustomerName}}<br/>
    {{if .PhoneNumber}}Tél: {{.PhoneNumber}}<br/>{{end}}
    {{if .Address}}Adr: {{.Address}}<br/>{{end}}
</div>
{{if .Notes}}<div class="notes"><strong>Note:</strong> {{.Notes}}</div>{{end}}
<table>
    <thead>
        <tr><th class="qty">Qte</th><th class="item">Article</th><th class="price">EUR</th></tr>
    </thead>
    <tbody>
    {{range .Lines}}    <tr><td class="qty">{{.Quantity}}x</td><td class="item">{{.Name}}</td><td class="price">{{.Total}}</td></tr>
    {{end}}</tbody>
</table>
<div class="total-section">
    <div class="total-line">TOTAL: {{.Total}}</div>
    <div class="status-line">Statut: {{.Status}}</div>
</div>
<div class="footer">
    <p>Merci de votre visite !</p>
    <p>À bientôt</p>
</div>
<div class="cut-line">--- découper ici ---</div>
<script>
    window.onload = function() { window.print(); };
</script>
</body>
</html>
`))

func typeBadge(orderType string) string {
	switch orderType {
	case models.TypeSurPlace:
		return "SUR PLACE"
	case models.TypeLivraison:
		return "LIVRAISON"
	default:
		return "A EMPORTER"
	}
}

// RenderTicket builds the printable document for an order. now is the print
// instant shown in the header.
func RenderTicket(order *models.Order, settings *models.RestaurantSettings, now time.Time) (string, error) {
	name := "Snack Manager"
	if settings != nil && settings.RestaurantName != "" {
		name = settings.RestaurantName
	}
	dateStr := fmt.Sprintf("%d %s %d", now.Day(), frenchLongMonths[now.Month()-1], now.Year())

	data := ticketData{
		Title:          "Ticket #" + order.ID,
		RestaurantName: name,
		PrintedAt:      dateStr + " - " + now.Format("15:04"),
		TypeBadge:      typeBadge(order.Type),
		OrderID:        order.ID,
		CustomerName:   order.CustomerName,
		PhoneNumber:    order.PhoneNumber,
		Notes:          order.Notes,
		Total:          FormatEuro(order.TotalPrice),
		Status:         strings.ToUpper(order.Status),
	}
	if order.Type == models.TypeLivraison {
		data.Address = order.Address
	}
	for _, it := range order.Items {
		data.Lines = append(data.Lines, ticketLine{
			Quantity: it.Quantity,
			Name:     it.Name,
			Total:    FormatEuro(it.UnitPrice * float64(it.Quantity)),
		})
	}

	var buf bytes.Buffer
	if err := ticketTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
