package report

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// PDFPrinter renders documents to PDF files with a headless browser. The
// browser is started on first use and reused afterwards.
type PDFPrinter struct {
	dir    string
	logger *log.Logger

	mu      sync.Mutex
	browser *rod.Browser
}

func NewPDFPrinter(dir string, logger *log.Logger) *PDFPrinter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &PDFPrinter{dir: dir, logger: logger}
}

func (p *PDFPrinter) connect() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.browser != nil {
		return p.browser, nil
	}
	u, err := launcher.New().Headless(true).Leakless(false).Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	p.logger.Printf("report: pdf browser started")
	p.browser = browser
	return browser, nil
}

func (p *PDFPrinter) Print(ctx context.Context, name string, html []byte) (string, error) {
	browser, err := p.connect()
	if err != nil {
		return "", err
	}
	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(string(html)); err != nil {
		return "", fmt.Errorf("load document: %w", err)
	}
	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return "", fmt.Errorf("print pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create print dir: %w", err)
	}
	path := filepath.Join(p.dir, name+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	p.logger.Printf("report: printed %s bytes=%d", path, len(data))
	return path, nil
}

func (p *PDFPrinter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.browser == nil {
		return nil
	}
	err := p.browser.Close()
	p.browser = nil
	return err
}
