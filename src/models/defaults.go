package models

// Defaults used when a present domain omits a key. Every constructor returns
// freshly allocated slices and maps so parsed aggregates never share storage.
const (
	DefaultLogLevel        = "info"
	DefaultFileFormat      = "parquet"
	DefaultCodec           = "none"
	DefaultSessionsPerYear = 252
)

func DefaultDataPaths() MDataPaths { return MDataPaths{} }

func DefaultDataScope() MDataScope {
	return MDataScope{
		Underlyings:       []string{},
		InstrumentClasses: []string{},
	}
}

func DefaultSymbolRegistry() MSymbolRegistry {
	return MSymbolRegistry{Mappings: map[string]map[string]string{}}
}

func DefaultLogger() MLogger {
	return MLogger{
		StdoutLevel:  DefaultLogLevel,
		FileLogLevel: DefaultLogLevel,
	}
}

func DefaultExport() MExport {
	return MExport{FileFormat: DefaultFileFormat, Codec: DefaultCodec}
}

func DefaultStreamLogging() MStreamLogging {
	return MStreamLogging{OutputFormats: []string{}}
}

// DefaultExecution returns the tunables sized for server-grade hardware.
func DefaultExecution() MExecution {
	return MExecution{
		IOChunkSize:              0,
		LowMemoryMode:            false,
		EnableParallelism:        true,
		GlobalWorkerCap:          10,
		ParallelizeDays:          true,
		DayWorkerCap:             10,
		BatchDaysMode:            true,
		DaysPerBatch:             5,
		RAMLimitedDayWorkers:     5,
		ParallelizeAssets:        false,
		AssetWorkerCap:           10,
		TotalWorkerCap:           10,
		ParallelFileIO:           true,
		FileWorkerCap:            10,
		ZipStreamingMode:         false,
		ProcessPoolCSV:           true,
		ParallelFillEngine:       true,
		MultiprocessFillEngine:   true,
		FillWorkerCap:            10,
		FillBatchSize:            50,
		AutoScaleFillWorkers:     true,
		ParallelMonthlyEngine:    true,
		MonthlyWorkerCap:         10,
		ParallelFuturesEngine:    true,
		FuturesWorkerCap:         10,
		ParallelGreeksEngine:     true,
		GreeksWorkerCap:          10,
		GreeksBlockSize:          100000,
		TransformWorkerCap:       10,
		TransformBlockSize:       1000,
		ParallelTTEEngine:        true,
		TTEWorkerCap:             10,
		TTEBlockSize:             500000,
		ParallelSyntheticFutures: true,
		SynFutWorkerCap:          10,
		SynFutBlockSize:          500000,
		UseMemoryController:      false,
		DisableMemoryController:  true,
		CacheMonthlyExpirySet:    true,
		OmitSpotIV:               false,
		BatchScalingFactor:       4,
	}
}

func DefaultTradingSchedule() MTradingSchedule {
	return MTradingSchedule{SessionsPerYear: DefaultSessionsPerYear}
}

func DefaultMarketConstants() MMarketConstants {
	return MMarketConstants{
		ValidUnderlyings: []string{},
		SymbolExceptions: []string{},
		ExpiryCutoffTime: []int{},
		CalendarMonthMap: map[string]string{},
		NumericMonthMap:  map[string]string{},
		AlphaMonthMap:    map[string]string{},
		TradingSchedule:  DefaultTradingSchedule(),
		ExchangeHolidays: []string{},
	}
}
