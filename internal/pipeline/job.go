package pipeline

import (
	"github.com/backmassage/vp9batch/internal/naming"
)

// Job is one input file and the output it will be encoded to. Both paths
// are absolute.
type Job struct {
	InputPath  string
	OutputPath string
}

// BuildJobs maps each input to <outputDir>/<stem>.<ext>. Two inputs that
// would share an output, or an output that would land on any input, get a
// " - dupN" suffix instead. Order follows inputs.
func BuildJobs(inputs []string, outputDir, ext string) []Job {
	resolver := naming.NewCollisionResolver()
	for _, in := range inputs {
		resolver.Reserve(in)
	}

	jobs := make([]Job, 0, len(inputs))
	for _, in := range inputs {
		out := naming.GetOutputPath(in, outputDir, ext)
		jobs = append(jobs, Job{
			InputPath:  in,
			OutputPath: resolver.Resolve(in, out),
		})
	}
	return jobs
}
