package report

import (
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "Q" + d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Local().Format("02/01/2006") },
	"clock": func(t time.Time) string { return t.Local().Format("15:04:05") },
}

var ticketTmpl = template.Must(template.New("ticket").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Ticket de Venta</title>
<style>
body { font-family: 'Courier New', monospace; width: 80mm; margin: 0 auto; font-size: 12px; }
.header, .footer { text-align: center; }
.row { display: flex; justify-content: space-between; }
.total { font-weight: bold; font-size: 14px; border-top: 1px dashed #000; }
</style>
</head>
<body>
<div class="ticket">
  <div class="header">
    <h1>{{.Business.Name}}</h1>
    {{with .Business.Address}}<p>{{.}}</p>{{end}}
    {{with .Business.Phone}}<p>Tel: {{.}}</p>{{end}}
  </div>
  <div class="info">
    <div class="row"><span>Fecha:</span><span>{{date .PrintedAt}}</span></div>
    <div class="row"><span>Hora:</span><span>{{clock .PrintedAt}}</span></div>
    <div class="row"><span>Cajero:</span><span>{{.Sale.CashierName}}</span></div>
  </div>
  <div class="productos">
  {{range .Sale.Lines}}
    <div class="producto">
      <div>{{.ProductName}}</div>
      <div class="row"><span>{{.Quantity}} x {{money .UnitPrice}}</span><span>{{money .Amount}}</span></div>
    </div>
  {{end}}
  </div>
  <div class="totales">
    <div class="row"><span>Subtotal:</span><span>{{money .Sale.Total}}</span></div>
    <div class="row total"><span>TOTAL:</span><span>{{money .Sale.Total}}</span></div>
    <div class="row"><span>Efectivo:</span><span>{{money .Sale.Tendered}}</span></div>
    <div class="row"><span>Cambio:</span><span>{{money .Sale.Change}}</span></div>
  </div>
  <div class="footer">
    <p>¡Gracias por su compra!</p>
    <p>Vuelva pronto</p>
  </div>
</div>
</body>
</html>
`))

var closingTmpl = template.Must(template.New("closing").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Reporte de Cierre de Caja</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 8px; border-bottom: 1px solid #ecf0f1; }
.resumen-total { font-weight: bold; }
</style>
</head>
<body>
  <h2>Reporte de Cierre de Caja</h2>
  <p>Reporte No. {{.Number}}</p>
  <div class="info">
    <p><strong>Cajero:</strong> {{.Cashier}}</p>
    <p><strong>Fecha de Cierre:</strong> {{date .GeneratedAt}}</p>
    <p><strong>Hora de Cierre:</strong> {{clock .GeneratedAt}}</p>
  </div>
  <div class="resumen">
    <h3>Resumen del Día</h3>
    <p>Total de Ventas: {{.Count}}</p>
    <p class="resumen-total">Total Ingresos: {{money .Income}}</p>
  </div>
  <h3>Detalle de Ventas</h3>
  {{range .Sales}}
  <div class="venta">
    <p><strong>Venta #{{.ID}}</strong> {{clock .Date}} <strong>{{money .Total}}</strong></p>
    <table>
      <thead><tr><th>Producto</th><th>Cant.</th><th>Precio</th><th>Subtotal</th></tr></thead>
      <tbody>
      {{range .Lines}}
        <tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{money .UnitPrice}}</td><td>{{money .Amount}}</td></tr>
      {{end}}
      </tbody>
    </table>
    <p>Efectivo: {{money .Tendered}} Cambio: {{money .Change}}</p>
  </div>
  {{end}}
  <div class="footer">
    <p><strong>{{.Business.Name}}</strong></p>
    <p>Reporte generado el {{date .GeneratedAt}} a las {{clock .GeneratedAt}}</p>
  </div>
</body>
</html>
`))
