package entities

import (
	"strings"
)

// D&D 5e skills
const (
	SkillAthletics      = "Athletics"
	SkillAcrobatics     = "Acrobatics"
	SkillSleightOfHand  = "Sleight of Hand"
	SkillStealth        = "Stealth"
	SkillArcana         = "Arcana"
	SkillHistory        = "History"
	SkillInvestigation  = "Investigation"
	SkillNature         = "Nature"
	SkillReligion       = "Religion"
	SkillAnimalHandling = "Animal Handling"
	SkillInsight        = "Insight"
	SkillMedicine       = "Medicine"
	SkillPerception     = "Perception"
	SkillSurvival       = "Survival"
	SkillDeception      = "Deception"
	SkillIntimidation   = "Intimidation"
	SkillPerformance    = "Performance"
	SkillPersuasion     = "Persuasion"
)

// Skills lists the skills in the order the rules present them
var Skills = []string{
	SkillAthletics, SkillAcrobatics, SkillSleightOfHand, SkillStealth,
	SkillArcana, SkillHistory, SkillInvestigation, SkillNature, SkillReligion,
	SkillAnimalHandling, SkillInsight, SkillMedicine, SkillPerception, SkillSurvival,
	SkillDeception, SkillIntimidation, SkillPerformance, SkillPersuasion,
}

// legacySkillNames maps the localized names stored by earlier exports
var legacySkillNames = map[string]string{
	"运动": SkillAthletics,
	"杂技": SkillAcrobatics,
	"巧手": SkillSleightOfHand,
	"隐匿": SkillStealth,
	"奥秘": SkillArcana,
	"历史": SkillHistory,
	"调查": SkillInvestigation,
	"自然": SkillNature,
	"宗教": SkillReligion,
	"驯兽": SkillAnimalHandling,
	"洞察": SkillInsight,
	"医药": SkillMedicine,
	"察觉": SkillPerception,
	"求生": SkillSurvival,
	"欺瞒": SkillDeception,
	"威吓": SkillIntimidation,
	"表演": SkillPerformance,
	"说服": SkillPersuasion,
}

// NormalizeSkill maps name onto its canonical skill name. Matching is case
// insensitive and accepts legacy localized names. Unknown names are returned
// trimmed with ok=false.
func NormalizeSkill(name string) (skill string, ok bool) {
	trimmed := strings.TrimSpace(name)
	for _, s := range Skills {
		if strings.EqualFold(s, trimmed) {
			return s, true
		}
	}
	if s, found := legacySkillNames[trimmed]; found {
		return s, true
	}
	return trimmed, false
}
