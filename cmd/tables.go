package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cubebake/cubebake/extract"
	"github.com/cubebake/cubebake/ktx"
	"github.com/olekukonko/tablewriter"
)

func newTable(buf *bytes.Buffer) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

func settingsTable(rows [][2]string) string {
	var buf bytes.Buffer
	table := newTable(&buf)
	table.SetHeader([]string{"Setting", "Value"})
	for _, row := range rows {
		table.Append([]string{row[0], row[1]})
	}
	table.Render()
	return buf.String()
}

func levelTable(report *extract.Report) string {
	var buf bytes.Buffer
	table := newTable(&buf)
	table.SetHeader([]string{"Level", "Face size", "Faces", "Corrected", "Status", "Time"})
	for _, res := range report.Stages() {
		status := "ok"
		switch {
		case res.Err != nil:
			status = res.Err.Error()
		case !res.Ok():
			status = "failed"
		}

		produced := 0
		for _, o := range res.Outcomes {
			if o.Ok() {
				produced++
			}
		}

		table.Append([]string{
			res.Level.String(),
			fmt.Sprintf("%dx%d", res.FaceSize, res.FaceSize),
			fmt.Sprintf("%d/6", produced),
			fmt.Sprintf("%d", res.Count(extract.OutcomeCorrected)+res.Count(extract.OutcomeCorrectiveReencodeFailed)),
			status,
			res.Duration.Round(time.Millisecond).String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "TOTAL", report.Duration.Round(time.Millisecond).String()})
	table.Render()
	return buf.String()
}

func filesTable(files ktx.Files) string {
	var buf bytes.Buffer
	table := newTable(&buf)
	table.SetHeader([]string{"Output Files", "Size"})
	for _, fi := range []*ktx.FileInfo{files.Specular, files.Diffuse} {
		if fi == nil {
			continue
		}
		table.Append([]string{filepath.Base(fi.Path), fmt.Sprintf("%.2f MB", fi.SizeMB())})
	}
	table.Render()
	return buf.String()
}
