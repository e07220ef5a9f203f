// Package export renders listing stubs, job details and prefill records for the terminal
// and for files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/muesli/termenv"

	"github.com/arome-jobs/jobwatch/internal/models"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// sheet is the flat view shared by the non-JSON formats. tableColumns picks the
// columns shown in the terminal table; csv and markdown get everything.
type sheet struct {
	header       []string
	rows         [][]string
	titleColumn  int
	linkColumn   int
	tableColumns []int
}

func WriteStubs(w io.Writer, stubs []models.ListingStub, format Format, opts WriteOptions) error {
	if stubs == nil {
		stubs = []models.ListingStub{}
	}
	s := sheet{
		header:       []string{"source", "external_id", "title", "company", "location", "employment_type", "salary", "listing_url"},
		titleColumn:  2,
		linkColumn:   7,
		tableColumns: []int{0, 1, 2, 3, 4, 7},
	}
	for _, stub := range stubs {
		s.rows = append(s.rows, []string{
			stub.Source, stub.ExternalID, stub.Title, stub.Company, stub.Location,
			stub.EmploymentType, stub.Salary, stub.ListingURL,
		})
	}
	return write(w, stubs, s, format, opts)
}

func WriteDetails(w io.Writer, details []models.JobDetail, format Format, opts WriteOptions) error {
	if details == nil {
		details = []models.JobDetail{}
	}
	s := sheet{
		header: []string{
			"source", "external_id", "title", "company", "location", "employment_type", "contract_type",
			"salary", "posted_at", "expires_at", "experience_months", "source_url", "description",
		},
		titleColumn:  2,
		linkColumn:   11,
		tableColumns: []int{0, 1, 2, 3, 4, 5, 6, 11},
	}
	for _, detail := range details {
		months := ""
		if detail.ExperienceMonths != nil {
			months = strconv.Itoa(*detail.ExperienceMonths)
		}
		s.rows = append(s.rows, []string{
			detail.Source, detail.ExternalID, detail.Title, detail.Company, detail.Location,
			detail.EmploymentType, detail.ContractType, detail.Salary, detail.PostedAt, detail.ExpiresAt,
			months, detail.SourceURL, detail.Description,
		})
	}
	return write(w, details, s, format, opts)
}

func WritePrefill(w io.Writer, records []models.PrefillRecord, format Format, opts WriteOptions) error {
	if records == nil {
		records = []models.PrefillRecord{}
	}
	s := sheet{
		header: []string{
			"title", "company_name", "location", "employment_type", "experience_level", "salary",
			"industry", "source_website", "expires_at", "source_url", "description",
		},
		titleColumn:  0,
		linkColumn:   9,
		tableColumns: []int{0, 1, 2, 3, 4, 7, 8, 9},
	}
	for _, record := range records {
		s.rows = append(s.rows, []string{
			record.Title, record.CompanyName, record.Location, record.EmploymentType, record.ExperienceLevel,
			record.Salary, record.Industry, record.SourceWebsite, record.ExpiresAt, record.SourceURL,
			record.Description,
		})
	}
	return write(w, records, s, format, opts)
}

func write(w io.Writer, value any, s sheet, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, value)
	case FormatCSV:
		return writeCSV(w, s, ',')
	case FormatTSV:
		return writeCSV(w, s, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, s)
	default:
		return writeTable(w, s, opts)
	}
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(value)
}

func writeCSV(w io.Writer, s sheet, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(s.header); err != nil {
		return err
	}
	for _, row := range s.rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, s sheet, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	output := termenv.NewOutput(w)

	header := make([]string, 0, len(s.tableColumns))
	for _, col := range s.tableColumns {
		header = append(header, s.header[col])
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range s.rows {
		cells := make([]string, 0, len(s.tableColumns))
		for _, col := range s.tableColumns {
			cell := oneLine(row[col])
			if col == s.linkColumn {
				cell = linkCell(cell, output, opts)
			} else if cell == "" {
				cell = "-"
			}
			cells = append(cells, cell)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, s sheet) error {
	if len(s.rows) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, row := range s.rows {
		lines := []string{fmt.Sprintf("- **%s**", oneLine(row[s.titleColumn]))}
		for col, value := range row {
			value = strings.TrimSpace(value)
			if col == s.titleColumn || value == "" {
				continue
			}
			if col == s.linkColumn {
				lines = append(lines, fmt.Sprintf("  %s: [Open listing](<%s>)", s.header[col], value))
				continue
			}
			if strings.Contains(value, "\n") {
				lines = append(lines, fmt.Sprintf("  %s:", s.header[col]))
				for _, part := range strings.Split(value, "\n") {
					lines = append(lines, "    "+part)
				}
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", s.header[col], value))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func oneLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func linkCell(raw string, output *termenv.Output, opts WriteOptions) string {
	const linkColor = "#87CEEB"

	if raw == "" {
		return "-"
	}
	display := raw
	if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
		display = shortURLLabel(raw)
	}
	if opts.ColorEnabled {
		display = output.String(display).Foreground(output.Color(linkColor)).String()
	}
	if opts.Hyperlinks {
		display = hyperlink(raw, display)
	}
	return display
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}

// ParseFormat accepts the names used on the command line.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatTSV:
		return FormatTSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format: %s", value)
}
