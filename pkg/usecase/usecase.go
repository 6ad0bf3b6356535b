package usecase

import (
	"github.com/secmon-lab/bqnvd/pkg/domain/model"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/infra"
)

// NVDTable is the fixed name of the CVE table within its dataset
const NVDTable types.BQTableID = "nvd"

const (
	// NVD publishes yearly feeds since 2002
	defaultStartYear = 2002

	// A dataset below this count is considered greenfield and gets a
	// full bootstrap instead of an incremental update.
	defaultBootstrapThreshold = 130000
)

type UseCase struct {
	clients  *infra.Clients
	metadata *model.MetadataConfig

	dataset    types.BQDatasetID
	schemaPath string
	bucket     types.CSBucket
	localDir   string

	startYear          int
	bootstrapThreshold int64
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:            clients,
		localDir:           ".",
		startYear:          defaultStartYear,
		bootstrapThreshold: defaultBootstrapThreshold,
	}

	for _, option := range options {
		option(uc)
	}

	return uc
}

type Option func(*UseCase)

func WithMetadata(metadata *model.MetadataConfig) Option {
	return func(uc *UseCase) {
		uc.metadata = metadata
	}
}

func WithDataset(dataset types.BQDatasetID) Option {
	return func(uc *UseCase) {
		uc.dataset = dataset
	}
}

func WithSchemaPath(path string) Option {
	return func(uc *UseCase) {
		uc.schemaPath = path
	}
}

func WithBucket(bucket types.CSBucket) Option {
	return func(uc *UseCase) {
		uc.bucket = bucket
	}
}

func WithLocalDir(dir string) Option {
	return func(uc *UseCase) {
		uc.localDir = dir
	}
}

func WithStartYear(year int) Option {
	return func(uc *UseCase) {
		uc.startYear = year
	}
}

func WithBootstrapThreshold(n int64) Option {
	if n < 0 {
		n = 0
	}
	return func(uc *UseCase) {
		uc.bootstrapThreshold = n
	}
}
