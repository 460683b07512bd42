// Package ktx packs the extracted cubemap faces into KTX2 containers using
// the external ktx tool.
package ktx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cubebake/cubebake/cubemap"
	"github.com/cubebake/cubebake/log"
	"github.com/cubebake/cubebake/progress"
	"github.com/cubebake/cubebake/tool"
)

var logger = log.New("ktx")

// FileInfo describes a container written to disk.
type FileInfo struct {
	Path      string
	SizeBytes int64
}

// SizeMB returns the container size in mebibytes.
func (fi *FileInfo) SizeMB() float64 {
	return float64(fi.SizeBytes) / (1024 * 1024)
}

// Files holds the containers produced by Assemble; a nil entry means that
// container was not built.
type Files struct {
	Specular *FileInfo
	Diffuse  *FileInfo
}

// Assembler builds the specular and diffuse containers.
type Assembler struct {
	Runner tool.Runner

	// Container tool executable.
	Tool string

	// Vulkan pixel format of both containers.
	Format string

	// Zstd supercompression level.
	Zstd int

	// Number of specular mip levels packed, starting at mip 0. The
	// extraction stage produces one more level than is packed by default.
	SpecularLevels int
}

// NewAssembler creates an assembler with the default format, compression
// and level count.
func NewAssembler(runner tool.Runner, ktxTool string) *Assembler {
	return &Assembler{
		Runner:         runner,
		Tool:           ktxTool,
		Format:         DefaultFormat,
		Zstd:           DefaultZstdLevel,
		SpecularLevels: cubemap.PackedMipLevels,
	}
}

// SpecularInputs lists the specular face files below inputDir in container
// order (mip-major, face-minor) together with any that are missing.
func (a *Assembler) SpecularInputs(inputDir string) (files, missing []string) {
	for mip := 0; mip < a.SpecularLevels; mip++ {
		files, missing = appendFaces(files, missing, cubemap.MipDir(inputDir, mip))
	}
	return files, missing
}

// DiffuseInputs lists the diffuse face files below inputDir in container
// order together with any that are missing.
func (a *Assembler) DiffuseInputs(inputDir string) (files, missing []string) {
	return appendFaces(nil, nil, cubemap.DiffuseDir(inputDir))
}

func appendFaces(files, missing []string, levelDir string) ([]string, []string) {
	for _, face := range cubemap.Faces {
		path := cubemap.FacePath(levelDir, face)
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
			continue
		}
		files = append(files, path)
	}
	return files, missing
}

// Assemble writes <outputDir>/<name>_specular.ktx2 and
// <outputDir>/<name>_diffuse.ktx2. A container is only built when every
// one of its face files exists; the tool is never run on a partial set.
// The diffuse container is only attempted once the specular one was
// written. On failure no file info is returned.
func (a *Assembler) Assemble(ctx context.Context, inputDir, name, outputDir string, sink progress.Sink) (bool, Files) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		logger.Errorf("%v: %s: %v", ErrOutputDir, outputDir, err)
		return false, Files{}
	}

	sink.SetDescription("Checking specular files")
	specIn, missing := a.SpecularInputs(inputDir)
	sink.Advance(0.2)
	specular, err := a.build(ctx, "specular", specIn, missing, a.SpecularLevels, filepath.Join(outputDir, name+"_specular.ktx2"), sink, 0.3)
	if err != nil {
		logger.Error(err)
		return false, Files{}
	}

	sink.SetDescription("Checking diffuse files")
	diffIn, missing := a.DiffuseInputs(inputDir)
	sink.Advance(0.1)
	diffuse, err := a.build(ctx, "diffuse", diffIn, missing, 1, filepath.Join(outputDir, name+"_diffuse.ktx2"), sink, 0.2)
	if err != nil {
		logger.Error(err)
		return false, Files{}
	}

	sink.SetDescription("KTX files created")
	sink.Advance(0.2)
	return true, Files{Specular: specular, Diffuse: diffuse}
}

// Command builds the container tool invocation for an ordered face list.
func (a *Assembler) Command(inputs []string, levels int, outputPath string) tool.Command {
	args := []string{
		"create",
		"--format", a.Format,
		"--assign-tf", "linear",
		"--cubemap",
		"--zstd", strconv.Itoa(a.Zstd),
		"--levels", strconv.Itoa(levels),
	}
	args = append(args, inputs...)
	args = append(args, outputPath)
	return tool.New(a.Tool, args...)
}

func (a *Assembler) build(ctx context.Context, kind string, inputs, missing []string, levels int, outputPath string, sink progress.Sink, share float64) (*FileInfo, error) {
	if len(missing) != 0 {
		for _, m := range missing {
			logger.Debugf("missing %s face file: %s", kind, m)
		}
		return nil, fmt.Errorf("%w: %s container needs %d more file(s), first: %s", ErrMissingFaces, kind, len(missing), missing[0])
	}

	sink.SetDescription(fmt.Sprintf("Creating %s KTX2", kind))
	sink.Advance(share / 2)

	cmd := a.Command(inputs, levels, outputPath)
	logger.Infof("running: %s", cmd)
	res, err := a.Runner.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrToolFailed, kind, err)
	}
	if !res.Success() {
		return nil, fmt.Errorf("%w: %s (exit %d): %s", ErrToolFailed, kind, res.ExitCode, string(res.Stderr))
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrToolFailed, kind, err)
	}
	sink.Advance(share / 2)

	return &FileInfo{Path: outputPath, SizeBytes: stat.Size()}, nil
}
