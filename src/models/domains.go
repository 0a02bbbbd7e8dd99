package models

// MDataPaths locates the raw inputs and the output/log directories.
type MDataPaths struct {
	DerivativesRoot string `mapstructure:"derivatives_root" json:"derivatives_root"`
	SpotRoot        string `mapstructure:"spot_root" json:"spot_root"`
	ExportRoot      string `mapstructure:"export_root" json:"export_root"`
	LogRoot         string `mapstructure:"log_root" json:"log_root"` // defaults to ExportRoot
}

// MDataScope selects what gets extracted.
type MDataScope struct {
	Underlyings       []string `mapstructure:"underlyings" json:"underlyings"`
	DateFrom          string   `mapstructure:"date_from" json:"date_from"`
	DateTo            string   `mapstructure:"date_to" json:"date_to"`
	InstrumentClasses []string `mapstructure:"instrument_classes" json:"instrument_classes"`
	ExpiryLimit       int      `mapstructure:"expiry_limit" json:"expiry_limit"` // 0 = unlimited
}

// MSymbolRegistry maps asset -> symbol type -> exchange symbol.
type MSymbolRegistry struct {
	Mappings map[string]map[string]string `mapstructure:"mappings" json:"mappings"`
}

// MSymbolMatching controls symbol normalization per instrument class.
type MSymbolMatching struct {
	OptionsMode     string `mapstructure:"options_mode" json:"options_mode"`
	FuturesMode     string `mapstructure:"futures_mode" json:"futures_mode"`
	IndexMode       string `mapstructure:"index_mode" json:"index_mode"`
	IsCaseSensitive bool   `mapstructure:"is_case_sensitive" json:"is_case_sensitive"`
	TrimWhitespace  bool   `mapstructure:"trim_whitespace" json:"trim_whitespace"`
}

type MPreprocessing struct {
	BackwardFill      bool `mapstructure:"backward_fill" json:"backward_fill"`
	ForwardFill       bool `mapstructure:"forward_fill" json:"forward_fill"`
	IgnoreEmptyFiles  bool `mapstructure:"ignore_empty_files" json:"ignore_empty_files"`
	MergeDailyOutputs bool `mapstructure:"merge_daily_outputs" json:"merge_daily_outputs"`
}

type MAcceleration struct {
	EnableGPU bool `mapstructure:"enable_gpu" json:"enable_gpu"`
}

type MLogger struct {
	StdoutLevel     string `mapstructure:"stdout_level" json:"stdout_level"`
	FileLogLevel    string `mapstructure:"file_log_level" json:"file_log_level"`
	LogTemplate     string `mapstructure:"log_template" json:"log_template"`
	TimestampFormat string `mapstructure:"timestamp_format" json:"timestamp_format"`
}

type MExport struct {
	FileFormat string `mapstructure:"file_format" json:"file_format"`
	Codec      string `mapstructure:"codec" json:"codec"`
}

type MStreamLogging struct {
	IsEnabled     bool     `mapstructure:"is_enabled" json:"is_enabled"`
	StreamLogRoot string   `mapstructure:"stream_log_root" json:"stream_log_root"`
	OutputFormats []string `mapstructure:"output_formats" json:"output_formats"`
}

// MExecution carries the parallelism, batching and memory tunables read by the
// engines. Nothing here is interpreted by the loader.
type MExecution struct {
	IOChunkSize              int  `mapstructure:"io_chunk_size" json:"io_chunk_size"` // 0 = auto
	LowMemoryMode            bool `mapstructure:"low_memory_mode" json:"low_memory_mode"`
	EnableParallelism        bool `mapstructure:"enable_parallelism" json:"enable_parallelism"`
	GlobalWorkerCap          int  `mapstructure:"global_worker_cap" json:"global_worker_cap"`
	ParallelizeDays          bool `mapstructure:"parallelize_days" json:"parallelize_days"`
	DayWorkerCap             int  `mapstructure:"day_worker_cap" json:"day_worker_cap"`
	BatchDaysMode            bool `mapstructure:"batch_days_mode" json:"batch_days_mode"`
	DaysPerBatch             int  `mapstructure:"days_per_batch" json:"days_per_batch"`
	RAMLimitedDayWorkers     int  `mapstructure:"ram_limited_day_workers" json:"ram_limited_day_workers"`
	ParallelizeAssets        bool `mapstructure:"parallelize_assets" json:"parallelize_assets"`
	AssetWorkerCap           int  `mapstructure:"asset_worker_cap" json:"asset_worker_cap"`
	TotalWorkerCap           int  `mapstructure:"total_worker_cap" json:"total_worker_cap"`
	ParallelFileIO           bool `mapstructure:"parallel_file_io" json:"parallel_file_io"`
	FileWorkerCap            int  `mapstructure:"file_worker_cap" json:"file_worker_cap"`
	ZipStreamingMode         bool `mapstructure:"zip_streaming_mode" json:"zip_streaming_mode"`
	ProcessPoolCSV           bool `mapstructure:"process_pool_csv" json:"process_pool_csv"`
	ParallelFillEngine       bool `mapstructure:"parallel_fill_engine" json:"parallel_fill_engine"`
	MultiprocessFillEngine   bool `mapstructure:"multiprocess_fill_engine" json:"multiprocess_fill_engine"`
	FillWorkerCap            int  `mapstructure:"fill_worker_cap" json:"fill_worker_cap"`
	FillBatchSize            int  `mapstructure:"fill_batch_size" json:"fill_batch_size"`
	AutoScaleFillWorkers     bool `mapstructure:"auto_scale_fill_workers" json:"auto_scale_fill_workers"`
	ParallelMonthlyEngine    bool `mapstructure:"parallel_monthly_engine" json:"parallel_monthly_engine"`
	MonthlyWorkerCap         int  `mapstructure:"monthly_worker_cap" json:"monthly_worker_cap"`
	ParallelFuturesEngine    bool `mapstructure:"parallel_futures_engine" json:"parallel_futures_engine"`
	FuturesWorkerCap         int  `mapstructure:"futures_worker_cap" json:"futures_worker_cap"`
	ParallelGreeksEngine     bool `mapstructure:"parallel_greeks_engine" json:"parallel_greeks_engine"`
	GreeksWorkerCap          int  `mapstructure:"greeks_worker_cap" json:"greeks_worker_cap"`
	GreeksBlockSize          int  `mapstructure:"greeks_block_size" json:"greeks_block_size"`
	TransformWorkerCap       int  `mapstructure:"transform_worker_cap" json:"transform_worker_cap"`
	TransformBlockSize       int  `mapstructure:"transform_block_size" json:"transform_block_size"`
	ParallelTTEEngine        bool `mapstructure:"parallel_tte_engine" json:"parallel_tte_engine"`
	TTEWorkerCap             int  `mapstructure:"tte_worker_cap" json:"tte_worker_cap"`
	TTEBlockSize             int  `mapstructure:"tte_block_size" json:"tte_block_size"`
	ParallelSyntheticFutures bool `mapstructure:"parallel_synthetic_futures" json:"parallel_synthetic_futures"`
	SynFutWorkerCap          int  `mapstructure:"syn_fut_worker_cap" json:"syn_fut_worker_cap"`
	SynFutBlockSize          int  `mapstructure:"syn_fut_block_size" json:"syn_fut_block_size"`
	UseMemoryController      bool `mapstructure:"use_memory_controller" json:"use_memory_controller"`
	DisableMemoryController  bool `mapstructure:"disable_memory_controller" json:"disable_memory_controller"`
	CacheMonthlyExpirySet    bool `mapstructure:"cache_monthly_expiry_set" json:"cache_monthly_expiry_set"`
	OmitSpotIV               bool `mapstructure:"omit_spot_iv" json:"omit_spot_iv"`
	BatchScalingFactor       int  `mapstructure:"batch_scaling_factor" json:"batch_scaling_factor"`
}

type MPostCompute struct {
	ComputeSyntheticFutures    bool `mapstructure:"compute_synthetic_futures" json:"compute_synthetic_futures"`
	RecomputeTheoreticalGreeks bool `mapstructure:"recompute_theoretical_greeks" json:"recompute_theoretical_greeks"`
}

// MMarketConstants holds calendars, month lookups and session timing shared
// by every stage. The month maps and the schedule are decoded by hand, so
// they are skipped by the generic field decoder.
type MMarketConstants struct {
	ValidUnderlyings []string          `mapstructure:"valid_underlyings" json:"valid_underlyings"`
	SymbolExceptions []string          `mapstructure:"symbol_exceptions" json:"symbol_exceptions"`
	ExpiryCutoffTime []int             `mapstructure:"expiry_cutoff_time" json:"expiry_cutoff_time"`
	CalendarMonthMap map[string]string `mapstructure:"-" json:"calendar_month_map"`
	NumericMonthMap  map[string]string `mapstructure:"-" json:"numeric_month_map"`
	AlphaMonthMap    map[string]string `mapstructure:"-" json:"alpha_month_map"`
	TradingSchedule  MTradingSchedule  `mapstructure:"-" json:"trading_schedule"`
	ExchangeHolidays []string          `mapstructure:"exchange_holidays" json:"exchange_holidays"`
}

type MTradingSchedule struct {
	SessionOpen       string `mapstructure:"session_open" json:"session_open"`
	SessionClose      string `mapstructure:"session_close" json:"session_close"`
	MinutesPerSession int    `mapstructure:"minutes_per_session" json:"minutes_per_session"`
	SessionsPerYear   int    `mapstructure:"sessions_per_year" json:"sessions_per_year"`
}
