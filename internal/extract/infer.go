package extract

// Column role qualification thresholds. A column becomes a candidate for
// a role when at least MinRoleMatches of its non-empty values match the
// role and the matching fraction strictly exceeds MinRoleDensity. Both
// conditions are required: the count floor keeps tiny sheets from
// electing columns on two lucky values, the density floor keeps wide
// mixed columns out.
const (
	MinRoleMatches = 3
	MinRoleDensity = 0.5
)

// ColumnRoles holds the inferred column indices of a sheet. An index of
// -1 means no column qualified for that role.
type ColumnRoles struct {
	GradeCol int
	IDCol    int
}

// NoRoles is the inference result for a sheet where nothing qualified.
var NoRoles = ColumnRoles{GradeCol: -1, IDCol: -1}

// HasGrade reports whether a grade column was found.
func (r ColumnRoles) HasGrade() bool { return r.GradeCol >= 0 }

// HasID reports whether a student id column was found.
func (r ColumnRoles) HasID() bool { return r.IDCol >= 0 }

// Complete reports whether both roles were found. Extraction requires a
// complete role assignment.
func (r ColumnRoles) Complete() bool { return r.HasGrade() && r.HasID() }

// columnProfile counts how a column's non-empty values distribute over
// the two roles.
type columnProfile struct {
	nonEmpty int
	grades   int
	ids      int
}

func (p columnProfile) gradeDensity() float64 {
	if p.nonEmpty == 0 {
		return 0
	}
	return float64(p.grades) / float64(p.nonEmpty)
}

func (p columnProfile) idDensity() float64 {
	if p.nonEmpty == 0 {
		return 0
	}
	return float64(p.ids) / float64(p.nonEmpty)
}

func (p columnProfile) qualifiesGrade() bool {
	return p.grades >= MinRoleMatches && p.gradeDensity() > MinRoleDensity
}

func (p columnProfile) qualifiesID() bool {
	return p.ids >= MinRoleMatches && p.idDensity() > MinRoleDensity
}

// InferColumnRoles scans every column of the grid and elects at most one
// grade column and one id column. Among qualifying columns the highest
// role density wins; on equal density the leftmost column is kept. A
// column qualifying for both roles is treated as a grade column only,
// since grade values are the rarer signal.
func InferColumnRoles(grid Grid) ColumnRoles {
	roles := NoRoles
	var bestGrade, bestID float64

	for col := 0; col < grid.Columns(); col++ {
		p := profileColumn(grid, col)
		if p.nonEmpty == 0 {
			continue
		}

		if p.qualifiesGrade() {
			if d := p.gradeDensity(); d > bestGrade {
				roles.GradeCol = col
				bestGrade = d
			}
			continue
		}
		if p.qualifiesID() {
			if d := p.idDensity(); d > bestID {
				roles.IDCol = col
				bestID = d
			}
		}
	}
	return roles
}

func profileColumn(grid Grid, col int) columnProfile {
	var p columnProfile
	for row := range grid {
		cell := grid.At(row, col)
		if cell.IsEmpty() {
			continue
		}
		p.nonEmpty++

		value := cell.Norm()
		if _, ok := NormalizeGrade(value); ok {
			p.grades++
		}
		if _, ok := NormalizeStudentID(value); ok {
			p.ids++
		}
	}
	return p
}
