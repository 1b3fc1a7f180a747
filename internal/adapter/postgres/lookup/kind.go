package lookup

import "github.com/heartmarshall/mediacard-backend/internal/domain"

// Kind is the per-table configuration that lets one repository implementation
// serve all six lookup tables. The count fields describe how record usage is
// measured: the four primary kinds are referenced by a foreign key column on
// the record table, genre and idol through their junction tables.
type Kind struct {
	Name  domain.LookupKind
	Table string

	countTable  string
	countColumn string
}

var (
	Director = Kind{Name: domain.KindDirector, Table: "director", countTable: "record", countColumn: "director_id"}
	Studio   = Kind{Name: domain.KindStudio, Table: "studio", countTable: "record", countColumn: "studio_id"}
	Label    = Kind{Name: domain.KindLabel, Table: "label", countTable: "record", countColumn: "label_id"}
	Series   = Kind{Name: domain.KindSeries, Table: "series", countTable: "record", countColumn: "series_id"}
	Genre    = Kind{Name: domain.KindGenre, Table: "genre", countTable: "record_genre", countColumn: "genre_id"}
	Idol     = Kind{Name: domain.KindIdol, Table: "idol", countTable: "idol_participation", countColumn: "idol_id"}
)

// Kinds returns all six kinds in a stable order.
func Kinds() []Kind {
	return []Kind{Director, Studio, Label, Series, Genre, Idol}
}
