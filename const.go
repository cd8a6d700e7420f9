package main

const (
	softwareName    = "vanitypgp"
	softwareVersion = "0.3.1"

	defaultUID                 = "vanitypgp"
	defaultPatternFile         = "./pattern"
	defaultOutputDir           = "./key_output"
	defaultConfigPath          = "./vanitypgp.toml"
	defaultMaxBackshiftDays    = 30
	defaultSpeedDisplaySeconds = 15

	// defaultSpeedSampleBlock is the number of candidates a worker tests
	// between throughput samples. Independent of pattern count; large enough
	// that sampling overhead is invisible next to key synthesis.
	defaultSpeedSampleBlock = 4096

	// defaultPattern is substituted when the pattern file yields no usable
	// patterns after filtering.
	defaultPattern = "ABCDEF"

	// minPatternLen is the shortest accepted pattern. Shorter suffixes match
	// so often that the output directory fills with junk keys.
	minPatternLen = 5

	// reportQueueDepth sizes the shared worker report channel. Matches are
	// rare and speed samples arrive at most once per sample block per
	// worker, so sends effectively never block.
	reportQueueDepth = 1024
)
