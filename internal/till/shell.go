// Package till is the interactive terminal front-end of the point of sale.
// It only talks to the services; all rules live behind them.
package till

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	productDomain "github.com/ridloal/smartshop-pos/internal/product/domain"
	productService "github.com/ridloal/smartshop-pos/internal/product/service"
	reportService "github.com/ridloal/smartshop-pos/internal/report/service"
	saleDomain "github.com/ridloal/smartshop-pos/internal/sale/domain"
	saleService "github.com/ridloal/smartshop-pos/internal/sale/service"
	userService "github.com/ridloal/smartshop-pos/internal/user/service"
	"github.com/shopspring/decimal"
)

const maxLoginAttempts = 3

var (
	ErrTooManyAttempts = errors.New("too many failed login attempts")
	errInputClosed     = errors.New("input closed")
)

type Services struct {
	Auth     userService.AuthService
	Products productService.ProductService
	Sales    saleService.SaleService
	Reports  reportService.ReportService
}

// Setting is one read-only line on the Settings screen.
type Setting struct {
	Name  string
	Value string
}

type Shell struct {
	svc        Services
	settings   []Setting
	exportPath string

	in  *bufio.Reader
	out io.Writer
	now func() time.Time

	operator string
	role     string
}

func NewShell(in io.Reader, out io.Writer, svc Services, exportPath string, settings []Setting) *Shell {
	return &Shell{
		svc:        svc,
		settings:   settings,
		exportPath: exportPath,
		in:         bufio.NewReader(in),
		out:        out,
		now:        time.Now,
	}
}

// Run alternates between the login screen and the main menu until input is
// exhausted. It returns ErrTooManyAttempts after three rejected logins in a row.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := s.login(ctx); err != nil {
			if errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}

		err := s.mainMenu(ctx)
		s.logout()
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) login(ctx context.Context) error {
	s.println("=== SmartShop POS ===")
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		username, err := s.readLine("Username: ")
		if err != nil {
			return err
		}
		password, err := s.readLine("Password: ")
		if err != nil {
			return err
		}

		role, err := s.svc.Auth.Check(ctx, username, password)
		if err == nil {
			s.operator, s.role = username, role
			s.printf("Welcome, %s (%s)\n", username, role)
			return nil
		}
		if errors.Is(err, userService.ErrInvalidCredentials) {
			s.println("Invalid credentials")
			continue
		}
		s.printError(err)
	}
	s.println("Too many failed attempts, closing.")
	return ErrTooManyAttempts
}

func (s *Shell) logout() {
	if s.operator != "" {
		s.svc.Sales.CancelCart(s.operator)
	}
	s.operator, s.role = "", ""
}

func (s *Shell) mainMenu(ctx context.Context) error {
	for {
		s.println("")
		s.println("1: Dashboard")
		s.println("2: Sales")
		s.println("3: Products")
		s.println("4: Customers")
		s.println("5: Reports")
		s.println("6: Settings")
		s.println("0: Logout")
		choice, err := s.readLine("Enter choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			s.dashboard(ctx)
		case "2":
			err = s.salesMenu(ctx)
		case "3":
			err = s.productsMenu(ctx)
		case "4":
			s.println("Customer management is not available yet.")
		case "5":
			err = s.exportReport(ctx)
		case "6":
			s.showSettings()
		case "0":
			s.println("Logged out.")
			return nil
		default:
			s.println("Unknown choice")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Shell) dashboard(ctx context.Context) {
	summary, err := s.svc.Reports.Summary(ctx, s.now())
	if err != nil {
		s.printError(err)
		return
	}
	s.printf("Today (%s)\n", summary.Day.Format("2006-01-02"))
	s.printf("  Sales lines:   %d\n", summary.SalesToday)
	s.printf("  Revenue:       %s\n", money(summary.RevenueToday))
	s.printf("  Products:      %d\n", summary.ProductCount)
	s.printf("  Low stock (<=%d): %d\n", summary.LowStockThreshold, summary.LowStockCount)
}

func (s *Shell) salesMenu(ctx context.Context) error {
	for {
		s.println("")
		s.printf("Cart total: %s\n", money(s.svc.Sales.CurrentTotal(s.operator)))
		s.println("1: Add product to cart")
		s.println("2: Show cart")
		s.println("3: Complete sale")
		s.println("4: Cancel sale")
		s.println("0: Back")
		choice, err := s.readLine("Enter choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := s.addLine(ctx); err != nil {
				return err
			}
		case "2":
			s.printCart(s.svc.Sales.Cart(s.operator))
		case "3":
			receipt, err := s.svc.Sales.CompleteSale(ctx, s.operator)
			if err != nil {
				s.printError(err)
				continue
			}
			s.printf("Sale completed. Receipt %s\n", receipt.ID)
			s.printLines(receipt.Lines)
			s.printf("Total: %s\n", money(receipt.Total))
		case "4":
			s.svc.Sales.CancelCart(s.operator)
			s.println("Cart cleared.")
		case "0":
			return nil
		default:
			s.println("Unknown choice")
		}
	}
}

func (s *Shell) addLine(ctx context.Context) error {
	barcode, err := s.readLine("Barcode: ")
	if err != nil {
		return err
	}
	qty, ok, err := s.readInt("Quantity: ")
	if err != nil || !ok {
		return err
	}

	cart, err := s.svc.Sales.AddLine(ctx, s.operator, barcode, qty)
	if err != nil {
		s.printError(err)
		return nil
	}
	last := cart.Lines[len(cart.Lines)-1]
	s.printf("Added %d x %s = %s\n", last.Qty, last.Name, money(last.LineTotal))
	return nil
}

func (s *Shell) printCart(cart saleDomain.Cart) {
	if cart.IsEmpty() {
		s.println("Cart is empty.")
		return
	}
	s.printLines(cart.Lines)
	s.printf("Total: %s\n", money(cart.Total))
}

func (s *Shell) printLines(lines []saleDomain.CartLine) {
	for i, l := range lines {
		s.printf("%2d. %-14s %-24s %4d x %10s = %10s\n",
			i+1, l.Barcode, l.Name, l.Qty, money(l.UnitPrice), money(l.LineTotal))
	}
}

func (s *Shell) productsMenu(ctx context.Context) error {
	for {
		s.println("")
		s.println("1: List products")
		s.println("2: Add product")
		s.println("3: Look up barcode")
		s.println("4: Restock product")
		s.println("0: Back")
		choice, err := s.readLine("Enter choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			s.listProducts(ctx)
		case "2":
			if err := s.addProduct(ctx); err != nil {
				return err
			}
		case "3":
			barcode, err := s.readLine("Barcode: ")
			if err != nil {
				return err
			}
			p, err := s.svc.Products.LookupByBarcode(ctx, barcode)
			if err != nil {
				s.printError(err)
				continue
			}
			s.printf("%s: %s, %d in stock\n", p.Name, money(p.SellPrice), p.Qty)
		case "4":
			if err := s.restock(ctx); err != nil {
				return err
			}
		case "0":
			return nil
		default:
			s.println("Unknown choice")
		}
	}
}

func (s *Shell) listProducts(ctx context.Context) {
	products, err := s.svc.Products.ListProducts(ctx)
	if err != nil {
		s.printError(err)
		return
	}
	if len(products) == 0 {
		s.println("No products yet.")
		return
	}
	s.printf("%-14s %-24s %10s %10s %6s\n", "Barcode", "Name", "Buy", "Sell", "Qty")
	for _, p := range products {
		s.printf("%-14s %-24s %10s %10s %6d\n", p.Barcode, p.Name, money(p.BuyPrice), money(p.SellPrice), p.Qty)
	}
}

func (s *Shell) addProduct(ctx context.Context) error {
	var req productDomain.CreateProductRequest
	var err error
	var ok bool

	if req.Barcode, err = s.readLine("Barcode: "); err != nil {
		return err
	}
	if req.Name, err = s.readLine("Name: "); err != nil {
		return err
	}
	if req.BuyPrice, ok, err = s.readDecimal("Buy price: "); err != nil || !ok {
		return err
	}
	if req.SellPrice, ok, err = s.readDecimal("Sell price: "); err != nil || !ok {
		return err
	}
	if req.Qty, ok, err = s.readInt("Quantity: "); err != nil || !ok {
		return err
	}

	product, err := s.svc.Products.AddProduct(ctx, req)
	if err != nil {
		s.printError(err)
		return nil
	}
	s.printf("Added %s (%s)\n", product.Name, product.Barcode)
	return nil
}

func (s *Shell) restock(ctx context.Context) error {
	barcode, err := s.readLine("Barcode: ")
	if err != nil {
		return err
	}
	qty, ok, err := s.readInt("Quantity received: ")
	if err != nil || !ok {
		return err
	}

	p, err := s.svc.Products.Restock(ctx, barcode, qty)
	if err != nil {
		s.printError(err)
		return nil
	}
	s.printf("%s now has %d in stock\n", p.Name, p.Qty)
	return nil
}

func (s *Shell) exportReport(ctx context.Context) error {
	path, err := s.readLine(fmt.Sprintf("Export file [%s]: ", s.exportPath))
	if err != nil {
		return err
	}
	if path == "" {
		path = s.exportPath
	}

	rows, err := s.svc.Reports.ExportSalesToFile(ctx, path)
	if err != nil {
		s.printError(err)
		return nil
	}
	s.printf("Exported %d sales to %s\n", rows, path)
	return nil
}

func (s *Shell) showSettings() {
	s.printf("Operator: %s (%s)\n", s.operator, s.role)
	for _, setting := range s.settings {
		s.printf("%s: %s\n", setting.Name, setting.Value)
	}
}

func (s *Shell) readLine(caption string) (string, error) {
	s.printf("%s", caption)
	text, err := s.in.ReadString('\n')
	if err != nil && (text == "" || !errors.Is(err, io.EOF)) {
		return "", errInputClosed
	}
	return strings.TrimSpace(text), nil
}

// readInt reports ok=false after telling the operator the input was not a number.
func (s *Shell) readInt(caption string) (int, bool, error) {
	text, err := s.readLine(caption)
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(text)
	if convErr != nil {
		s.printf("%q is not a whole number\n", text)
		return 0, false, nil
	}
	return n, true, nil
}

func (s *Shell) readDecimal(caption string) (decimal.Decimal, bool, error) {
	text, err := s.readLine(caption)
	if err != nil {
		return decimal.Zero, false, err
	}
	d, convErr := decimal.NewFromString(text)
	if convErr != nil {
		s.printf("%q is not an amount\n", text)
		return decimal.Zero, false, nil
	}
	return d, true, nil
}

func (s *Shell) printError(err error) {
	s.println("Error: " + apperr.Message(err))
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
