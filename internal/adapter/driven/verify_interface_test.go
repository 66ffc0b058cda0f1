package driven

import (
	"github.com/alorle/smogwatch/internal/memory"
	port "github.com/alorle/smogwatch/internal/port/driven"
)

// Compile-time checks that adapters implement their ports
var (
	_ port.AirQualitySource = (*OpenAQHTTPAdapter)(nil)
	_ port.AirQualitySource = (*GuardedAirQualitySource)(nil)
	_ port.Encyclopedia     = (*WikipediaHTTPAdapter)(nil)
	_ port.Encyclopedia     = (*GuardedEncyclopedia)(nil)
	_ port.ReportRepository = (*ReportBoltDBRepository)(nil)
	_ port.ReportRepository = (*memory.ReportRepository)(nil)
)
