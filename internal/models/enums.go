package models

import "strings"

// Cluster is the HIGH/MEDIUM/LOW fit bucket shared by both lead domains.
type Cluster string

const (
	ClusterHigh   Cluster = "HIGH"
	ClusterMedium Cluster = "MEDIUM"
	ClusterLow    Cluster = "LOW"
)

// PipelineStatus is the outreach lead lifecycle stage.
type PipelineStatus string

const (
	StatusNew            PipelineStatus = "NEW"
	StatusContacted      PipelineStatus = "CONTACTED"
	StatusReplied        PipelineStatus = "REPLIED"
	StatusInterview      PipelineStatus = "INTERVIEW"
	StatusPilotCandidate PipelineStatus = "PILOT_CANDIDATE"
	StatusPilotRunning   PipelineStatus = "PILOT_RUNNING"
	StatusWon            PipelineStatus = "WON"
	StatusLost           PipelineStatus = "LOST"
)

// PipelineOrder lists pipeline stages in board order.
var PipelineOrder = []PipelineStatus{
	StatusNew,
	StatusContacted,
	StatusReplied,
	StatusInterview,
	StatusPilotCandidate,
	StatusPilotRunning,
	StatusWon,
	StatusLost,
}

// FundingStatus is the funding lead lifecycle stage. Values are distinct
// from the outreach pipeline.
type FundingStatus string

const (
	FundingStatusNew           FundingStatus = "NEW"
	FundingStatusResearched    FundingStatus = "RESEARCHED"
	FundingStatusWarmIntro     FundingStatus = "WARM_INTRO"
	FundingStatusContacted     FundingStatus = "CONTACTED"
	FundingStatusMeetingBooked FundingStatus = "MEETING_BOOKED"
	FundingStatusInProcessDD   FundingStatus = "IN_PROCESS_DD"
	FundingStatusWon           FundingStatus = "WON"
	FundingStatusLost          FundingStatus = "LOST"
)

var FundingStatusOrder = []FundingStatus{
	FundingStatusNew,
	FundingStatusResearched,
	FundingStatusWarmIntro,
	FundingStatusContacted,
	FundingStatusMeetingBooked,
	FundingStatusInProcessDD,
	FundingStatusWon,
	FundingStatusLost,
}

// FundType categorizes a funding lead.
type FundType string

const (
	FundTypeVC           FundType = "VC"
	FundTypeCVC          FundType = "CVC"
	FundTypeAngel        FundType = "ANGEL"
	FundTypeAngelNetwork FundType = "ANGEL_NETWORK"
	FundTypeAccelerator  FundType = "ACCELERATOR"
	FundTypeIncubator    FundType = "INCUBATOR"
	FundTypeGrant        FundType = "GRANT"
	FundTypePublic       FundType = "PUBLIC_PROGRAM"
	FundTypeCompetition  FundType = "COMPETITION"
	FundTypeVentureDebt  FundType = "VENTURE_DEBT"
	FundTypeOther        FundType = "OTHER"
)

// Stage is an investment stage a fund covers.
type Stage string

const (
	StageIdea        Stage = "IDEA"
	StagePreSeed     Stage = "PRE_SEED"
	StageSeed        Stage = "SEED"
	StageSeriesA     Stage = "SERIES_A"
	StageSeriesBPlus Stage = "SERIES_B_PLUS"
	StageGrowth      Stage = "GROWTH"
	StageAny         Stage = "ANY"
)

// ReasonLost records why a funding lead was closed as LOST.
type ReasonLost string

const (
	ReasonNoFit      ReasonLost = "NO_FIT"
	ReasonNotNow     ReasonLost = "NOT_NOW"
	ReasonNoResponse ReasonLost = "NO_RESPONSE"
	ReasonRejected   ReasonLost = "REJECTED"
	ReasonOther      ReasonLost = "OTHER"
)

// EmailStyle selects an outreach email template.
type EmailStyle string

const (
	EmailShort     EmailStyle = "SHORT"
	EmailMedium    EmailStyle = "MEDIUM"
	EmailTechnical EmailStyle = "TECHNICAL"
	// EmailGrant is only valid for funding leads.
	EmailGrant EmailStyle = "GRANT"
)

var (
	pipelineStatuses = map[PipelineStatus]bool{
		StatusNew: true, StatusContacted: true, StatusReplied: true,
		StatusInterview: true, StatusPilotCandidate: true,
		StatusPilotRunning: true, StatusWon: true, StatusLost: true,
	}
	fundingStatuses = map[FundingStatus]bool{
		FundingStatusNew: true, FundingStatusResearched: true,
		FundingStatusWarmIntro: true, FundingStatusContacted: true,
		FundingStatusMeetingBooked: true, FundingStatusInProcessDD: true,
		FundingStatusWon: true, FundingStatusLost: true,
	}
	fundTypes = map[FundType]bool{
		FundTypeVC: true, FundTypeCVC: true, FundTypeAngel: true,
		FundTypeAngelNetwork: true, FundTypeAccelerator: true,
		FundTypeIncubator: true, FundTypeGrant: true, FundTypePublic: true,
		FundTypeCompetition: true, FundTypeVentureDebt: true, FundTypeOther: true,
	}
	stages = map[Stage]bool{
		StageIdea: true, StagePreSeed: true, StageSeed: true,
		StageSeriesA: true, StageSeriesBPlus: true, StageGrowth: true,
		StageAny: true,
	}
	reasonsLost = map[ReasonLost]bool{
		ReasonNoFit: true, ReasonNotNow: true, ReasonNoResponse: true,
		ReasonRejected: true, ReasonOther: true,
	}
)

func normalizeToken(value string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), " ", "_")
}

// ParsePipelineStatus coerces a raw token to a pipeline status. Unknown
// tokens fall back to NEW rather than erroring, so CSV and query input
// never reject a row over a status typo.
func ParsePipelineStatus(value string) PipelineStatus {
	status := PipelineStatus(normalizeToken(value))
	if pipelineStatuses[status] {
		return status
	}
	return StatusNew
}

// ParseFundingStatus coerces a raw token to a funding status, NEW on unknown.
func ParseFundingStatus(value string) FundingStatus {
	status := FundingStatus(normalizeToken(value))
	if fundingStatuses[status] {
		return status
	}
	return FundingStatusNew
}

// ParseFundType coerces a raw token to a fund type, OTHER on unknown.
func ParseFundType(value string) FundType {
	ft := FundType(normalizeToken(value))
	if fundTypes[ft] {
		return ft
	}
	return FundTypeOther
}

// ParseCluster returns the cluster for a raw token, or nil when the token is
// empty or unrecognized. A nil result means "no override": reads fall
// through to the derived cluster.
func ParseCluster(value string) *Cluster {
	cluster := Cluster(strings.ToUpper(strings.TrimSpace(value)))
	switch cluster {
	case ClusterHigh, ClusterMedium, ClusterLow:
		return &cluster
	}
	return nil
}

// ParseTargetStage coerces a raw token to a stage usable as a target stage,
// PRE_SEED on unknown. Dashes are accepted ("Pre-Seed").
func ParseTargetStage(value string) Stage {
	token := strings.ReplaceAll(normalizeToken(value), "-", "_")
	stage := Stage(token)
	if stages[stage] {
		return stage
	}
	return StagePreSeed
}

// ParseStageList splits a pipe-joined stage list, normalizes each entry
// ("Series B+" -> SERIES_B_PLUS), drops unknowns, and dedups while
// preserving order.
func ParseStageList(value string) StageList {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return ParseStageSlice(strings.Split(value, "|"))
}

// ParseReasonLost returns nil for empty or unknown tokens; the field is
// optional, unlike the status fields.
func ParseReasonLost(value string) *ReasonLost {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	reason := ReasonLost(normalizeToken(value))
	if reasonsLost[reason] {
		return &reason
	}
	return nil
}
