package scoring

import "github.com/spigell/mars-eval/internal/candidate"

// Role catalog.
const (
	RoleMissionCommander      = "Mission Commander"
	RoleChiefEngineer         = "Chief Engineer"
	RoleSeniorSpecialist      = "Senior Specialist"
	RoleMissionSpecialist     = "Mission Specialist"
	RoleOperationsSupport     = "Operations Support"
	RoleSupportSpecialist     = "Support Specialist"
	RoleChiefMedicalOfficer   = "Chief Medical Officer"
	RoleSystemsEngineer       = "Systems Engineer"
	RoleLifeSupportSpecialist = "Life Support Specialist"
)

var Roles = []string{
	RoleMissionCommander,
	RoleChiefEngineer,
	RoleSeniorSpecialist,
	RoleMissionSpecialist,
	RoleOperationsSupport,
	RoleSupportSpecialist,
	RoleChiefMedicalOfficer,
	RoleSystemsEngineer,
	RoleLifeSupportSpecialist,
}

type roleBand struct {
	min  int
	role string
}

// roleBands is checked top-down; the first band the overall score reaches wins.
var roleBands = []roleBand{
	{min: 85, role: RoleMissionCommander},
	{min: 75, role: RoleChiefEngineer},
	{min: 65, role: RoleSeniorSpecialist},
	{min: 55, role: RoleMissionSpecialist},
	{min: 45, role: RoleOperationsSupport},
}

type roleOverride struct {
	skill string
	min   int
	role  string
}

// roleOverrides replace the base role. Only the first matching override applies.
var roleOverrides = []roleOverride{
	{skill: candidate.SkillMedical, min: 60, role: RoleChiefMedicalOfficer},
	{skill: candidate.SkillProgramming, min: 60, role: RoleSystemsEngineer},
	{skill: candidate.SkillAgriculture, min: 55, role: RoleLifeSupportSpecialist},
}

// BaseRole maps an overall score to a role without skill overrides.
func BaseRole(overall int) string {
	for _, band := range roleBands {
		if overall >= band.min {
			return band.role
		}
	}
	return RoleSupportSpecialist
}

// SuggestRole resolves the role for a record with the given overall score.
func SuggestRole(c *candidate.Record, overall int) string {
	for _, o := range roleOverrides {
		if c.HasSkill(o.skill) && overall >= o.min {
			return o.role
		}
	}
	return BaseRole(overall)
}
