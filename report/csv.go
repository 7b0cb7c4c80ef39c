package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/viant/depscan/analyzer/dependency"
	"golang.org/x/xerrors"
)

var csvHeader = []string{
	"package_name",
	"package_name_path",
	"version",
	"ecosystem",
	"application_name",
	"application_root",
	"has_version",
	"has_path",
	"should_version",
	"should_path",
	"can_version",
	"can_path",
	"version_mismatch",
	"constraint_violation",
	"parent_package",
	"is_direct",
	"dependency_count",
	"security",
}

func writeCSV(w io.Writer, deps []*dependency.Classified) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return xerrors.Errorf("failed to write csv header: %w", err)
	}
	for _, dep := range deps {
		if err := writer.Write(csvRow(dep)); err != nil {
			return xerrors.Errorf("failed to write csv row %v: %w", dep.Name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRow(dep *dependency.Classified) []string {
	version, _ := dep.PrimaryVersion()
	security := dep.Security
	if security == "" {
		security = "NONE"
	}
	row := []string{dep.Name, dep.PackagePath, version, string(dep.Ecosystem), dep.ApplicationName, dep.ApplicationRoot}
	for _, classification := range dependency.Classifications {
		v, _ := dep.Version(classification)
		source, _ := dep.Source(classification)
		row = append(row, v, source)
	}
	return append(row,
		strconv.FormatBool(dep.HasVersionMismatch),
		strconv.FormatBool(dep.HasConstraintViolation),
		dep.ParentPackage,
		strconv.FormatBool(dep.IsDirect()),
		strconv.Itoa(len(dep.Dependencies)),
		security,
	)
}
