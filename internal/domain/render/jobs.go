package render

import "github.com/okian/wrapbrain/internal/domain/model"

// platformDimensions is the fixed per-platform output size table.
var platformDimensions = map[model.Platform]struct{ width, height int }{
	model.PlatformInstagram:     {1080, 1920},
	model.PlatformTikTok:        {1080, 1920},
	model.PlatformYouTubeShorts: {1080, 1920},
	model.PlatformFacebook:      {1080, 1080},
}

// JobsOptions parameterize a multi-platform fan-out.
type JobsOptions struct {
	TranslateOptions
	Platforms []model.Platform
}

// MultiPlatformJobs lowers the creative plan once per requested platform,
// overriding dimensions from the platform table. Facebook's square crop
// additionally pins the video fit. Every job starts pending; job IDs and
// later status transitions belong to the caller.
func MultiPlatformJobs(opts JobsOptions) []Job {
	platforms := opts.Platforms
	if len(platforms) == 0 {
		platforms = []model.Platform{model.PlatformInstagram}
	}

	jobs := make([]Job, 0, len(platforms))
	for _, platform := range platforms {
		timeline := Translate(opts.TranslateOptions)
		if dims, ok := platformDimensions[platform]; ok {
			timeline.Width = dims.width
			timeline.Height = dims.height
		}
		if platform == model.PlatformFacebook {
			timeline.Modifications[fieldVideoFit] = "cover"
		}
		jobs = append(jobs, Job{
			Platform: platform,
			Timeline: timeline,
			Status:   StatusPending,
		})
	}
	return jobs
}
