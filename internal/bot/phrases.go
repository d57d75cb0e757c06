package bot

import "mafka/internal/domain"

// Category names the kind of table talk a phrase belongs to. Trigger
// analysis of the human's messages decides which category a responding
// bot draws from.
type Category string

const (
	CategoryDefault    Category = "default"
	CategoryAccusation Category = "accusation"
	CategoryDefense    Category = "defense"
	CategorySheriff    Category = "sheriff"
	CategoryStrategy   Category = "strategy"
)

const fallbackLine = "I think we all need to pay closer attention."

// phraseBanks holds day-table lines per role, category, and personality
// column. Missing categories fall back to the role's default bank.
var phraseBanks = map[domain.Role]map[Category][personalityCount][]string{
	domain.RoleMafia: {
		CategoryDefault: {
			{
				"I say we go after the most active player.",
				"Let's deal with whoever talks the most.",
				"We need to remove whoever might be the sheriff.",
				"I suggest we take out the one acting too suspicious.",
			},
			{
				"I'm not mafia, I'm an ordinary townsperson!",
				"Why are you accusing me?",
				"I can prove I'm on the town's side.",
				"Don't blame me, take a better look at the others.",
				"I swear I'm not mafia! Believe me!",
			},
			{
				"Let's think logically about who could be mafia.",
				"If you analyze everyone's behavior, some people stand out.",
				"I feel like we're missing important details here.",
				"Looking at the earlier votes, you can draw interesting conclusions.",
				"Statistically, the odds that the mafia is among the quiet ones are high.",
			},
			{
				"Let's not rush to conclusions over these accusations.",
				"Does anyone have actual proof? I haven't seen anything suspicious.",
				"We're wasting precious time on empty arguments.",
				"What if the mafia is deliberately trying to confuse us?",
				"I think we should calm down and reason clearly.",
			},
		},
		CategoryAccusation: {
			{
				"Those accusations are absurd! You look suspicious yourself.",
				"You're deflecting suspicion from yourself by blaming others!",
				"Your arguments are not convincing at all.",
				"This is ridiculous! You have no proof whatsoever.",
				"I'd be careful with claims like that if I were you.",
			},
			{
				"I'm not mafia, I swear! Why are you accusing me?",
				"Please believe me, I'm on the town's side!",
				"I'm really just a townsperson, don't vote against me!",
				"You're making a mistake by accusing me.",
				"If you vote me out, the town loses an honest player.",
			},
			{
				"Your accusations are illogical. Let's analyze the facts.",
				"If I were mafia, I would act very differently.",
				"Statistically, your accusations have little basis.",
				"I can logically refute every one of your claims.",
				"Your conclusions rest on false premises.",
			},
			{
				"Haven't you considered that the real mafia is staying quiet right now?",
				"Let's not get distracted by baseless accusations.",
				"These accusations only play into the real mafia's hands.",
				"Maybe we should hear from the other players too?",
				"I suggest we change the subject to something more constructive.",
			},
		},
		CategoryDefense: {
			{
				"That's exactly how the real mafia makes excuses!",
				"The more you defend yourself, the more suspicious you look.",
				"A real townsperson wouldn't defend themselves this hard.",
				"You're too nervous for an innocent person.",
			},
			{
				"I'm not mafia either! We're all just trying to survive.",
				"I understand, I've been accused without reason too.",
				"Let's not attack each other without proof.",
				"We're all in the same boat, except the mafia of course.",
			},
			{
				"Interesting how actively you defend yourself. Statistically that's suspicious.",
				"Your arguments are logical, but not enough to clear you.",
				"I've noticed some contradictions in your statements.",
				"I'd like to hear more concrete arguments in your defense.",
			},
			{
				"Let's not get stuck on excuses.",
				"Instead of excuses, let's talk strategy.",
				"Excuses prove nothing, we need facts.",
				"These excuses only help the mafia.",
			},
		},
		CategoryStrategy: {
			{
				"I suggest we vote against the quietest players.",
				"Let's focus on the ones who barely speak.",
				"Watch whoever keeps changing their mind.",
				"My strategy is to catch contradictions in what people say.",
			},
			{
				"I suggest we logically rule out the least likely candidates.",
				"Let's build a suspicion list for every player.",
				"We should analyze the voting patterns.",
				"My strategy is eliminating the impossible.",
			},
			{
				"Let's analyze the votes from the previous days.",
				"Statistically, the mafia often votes against different people.",
				"If we analyze the behavior patterns, we'll find the mafia.",
				"Let's build a decision tree for the optimal vote.",
			},
			{
				"Maybe we should focus on another aspect of the game?",
				"Strategy is good, but intuition matters too.",
				"Sometimes the best strategy is no strategy.",
				"I prefer an adaptive approach over a rigid plan.",
			},
		},
	},
	domain.RoleSheriff: {
		CategoryDefault: {
			{
				"I'm watching every player closely.",
				"Some of you are acting suspicious, I think.",
				"I'm paying attention to how everyone votes.",
				"I've noticed some oddities in certain players' behavior.",
			},
			{
				"I'm not sure yet who could be mafia.",
				"We need more information before drawing conclusions.",
				"Let's not rush into accusations.",
				"I prefer to gather more data first.",
			},
			{
				"If you analyze everyone's behavior, the inconsistencies show.",
				"I'm trying to build a logical chain of events.",
				"Statistically, the mafia shows certain behavioral patterns.",
				"Rule out the impossible and whatever remains is the truth.",
			},
			{
				"I have some thoughts, but I'm not ready to share them yet.",
				"Sometimes silence says more than words.",
				"I know more than I can say right now.",
				"Trust me, I have a plan.",
			},
		},
		CategorySheriff: {
			{
				"As someone who watches everyone carefully, I can tell you things.",
				"If I could check people, I'd start with the most suspicious ones.",
				"The sheriff's checks are the key to the town winning.",
				"Knowing people's roles is the most valuable thing in this game.",
			},
			{
				"I wouldn't reveal role information right away, even if I had it.",
				"The sheriff has to be careful not to expose themselves to the mafia.",
				"Role information is valuable, but dangerous too.",
				"I'd advise the sheriff not to come out too early.",
			},
			{
				"Statistically, the sheriff has good odds of finding the mafia within a few nights.",
				"Logically, the sheriff should check the most suspicious players first.",
				"Mathematically, the sheriff's chances grow every night.",
				"Approached analytically, there's an optimal checking strategy.",
			},
			{
				"I know more than it seems at first glance.",
				"I'm watching all of you and drawing conclusions.",
				"All in good time, everything will become clear soon.",
				"I prefer to keep my thoughts to myself for now.",
			},
		},
	},
	domain.RoleCivilian: {
		CategoryDefault: {
			{
				"One of us is definitely mafia, stay sharp.",
				"Whoever stays silent is the mafia!",
				"I don't trust the ones making too many excuses.",
				"I suspect whoever keeps deflecting attention from themselves.",
			},
			{
				"Let's think logically, who could be mafia?",
				"If we analyze all the messages, there are clues to find.",
				"Let's rule people out one by one, starting with the obvious.",
				"I suggest we methodically eliminate suspects.",
			},
			{
				"I knew it! I had a feeling about this!",
				"How frightening to realize the mafia was right next to us!",
				"I'm in shock! But it explains a lot!",
				"My heart kept telling me something was wrong!",
			},
			{
				"Let's stay calm and search for the mafia methodically.",
				"Anyone have suspicions? I'm ready to hear every theory.",
				"No need to panic, let's reason soberly.",
				"Panic only helps the mafia, let's stay rational.",
			},
		},
		CategoryAccusation: {
			{
				"I agree, that player really is suspicious!",
				"Yes, I noticed the strange behavior too.",
				"Exactly! They keep deflecting suspicion from themselves.",
				"I've suspected that player for a while now!",
			},
			{
				"Let's analyze these accusations logically.",
				"Do we actually have enough evidence for this?",
				"I want to hear both sides before drawing conclusions.",
				"Let's methodically verify every argument.",
			},
			{
				"I knew it! I could feel they were mafia!",
				"Could it really be? I can't believe it!",
				"I'm so anxious! Have we finally found the mafia?",
				"I always felt something was off about them!",
			},
			{
				"Let's not rush to conclusions over these accusations.",
				"Let's hear the accused out before deciding anything.",
				"I think we need more proof.",
				"I urge everyone to stay calm and objective here.",
			},
		},
		CategoryDefense: {
			{
				"Your excuses don't sound convincing.",
				"The more you defend yourself, the more suspicious you look.",
				"A real townsperson wouldn't need to defend themselves this hard.",
				"Your defense sounds too rehearsed.",
			},
			{
				"Your arguments make sense, but some things don't add up.",
				"Let's analyze your excuses logically.",
				"I want more concrete proof of your innocence.",
				"Let's go through your arguments point by point.",
			},
			{
				"I want to believe you, but I'm so afraid of being wrong!",
				"It's so hard to tell who's telling the truth!",
				"I'm terrified we might condemn an innocent person!",
				"I'm so conflicted! I don't know who to believe!",
			},
			{
				"I've heard your defense and I'm ready to think it over.",
				"Everyone deserves a chance to defend themselves.",
				"Let's all calm down and judge this objectively.",
				"Let's be fair and hear every side.",
			},
		},
		CategoryStrategy: {
			{
				"I suggest we vote against the most suspicious players.",
				"Let's focus on the ones who barely speak.",
				"Watch whoever keeps changing their mind.",
				"My strategy is watching how people react to accusations.",
			},
			{
				"I suggest we logically rule out the least likely candidates.",
				"Let's build a suspicion list for every player.",
				"We should analyze the voting patterns.",
				"My strategy is eliminating the impossible.",
			},
			{
				"I feel like we have to act fast!",
				"My heart tells me the mafia is right here among us!",
				"Let's unite against our common enemy!",
				"I believe together we can beat the mafia!",
			},
			{
				"I suggest we act deliberately and take our time.",
				"Panic only plays into the mafia's hands.",
				"My strategy is staying calm and rational.",
				"Let's not let emotions drive our decisions.",
			},
		},
	},
}

// mafiaChatLines are night-channel musings, one column per personality.
var mafiaChatLines = [personalityCount][]string{
	{
		"I say we kill the most active player.",
		"Let's eliminate whoever talks the most.",
		"We need to remove whoever might be the sheriff.",
		"We have to get rid of the most dangerous player.",
	},
	{
		"I think we should kill whoever draws the least suspicion.",
		"Let's pick a victim nobody would expect.",
		"We need to be strategic about choosing the victim.",
		"I suggest killing whoever could unite the town.",
	},
	{
		"Analyzing the messages, I think the sheriff is...",
		"Judging by the vote, we should kill...",
		"Reasoning logically, the best target is...",
		"Statistically, our most profitable kill is...",
	},
	{
		"Let's be careful and avoid the obvious targets.",
		"I suggest we act quietly and draw no attention.",
		"Let's not rush the choice of target.",
		"Let's think carefully about who to kill.",
	},
}

// mafiaTargetLines name a concrete victim. %s is the target's name.
var mafiaTargetLines = []string{
	"I think we should kill %s.",
	"%s seems suspicious, let's remove them.",
	"I suggest we vote for %s.",
	"%s might be the sheriff, we need to eliminate them.",
	"I'd pick %s as the target.",
}

// discreditLines let a mafia bot undermine a seat whose table talk
// sounds like the sheriff sharing results. %s is that seat's name.
var discreditLines = []string{
	"%s talks like they know everyone's cards. A bit too confident, no?",
	"Why does %s keep hinting at secret knowledge? Sounds made up to me.",
	"I wouldn't trust a word %s says about who's suspicious.",
	"%s is playing detective awfully hard. That's exactly what mafia would do.",
}

// sheriffHintLines let a bot sheriff point at a confirmed mafia without
// claiming the role outright. %s is the suspect's name.
var sheriffHintLines = []string{
	"I've been watching %s closely, and I don't like what I see.",
	"There's something suspicious about how %s behaves.",
	"I'd advise taking a much closer look at %s.",
	"I get the feeling %s is hiding something from us.",
}

// lastWordLines are spoken by an eliminated bot townsperson.
var lastWordLines = []string{
	"You're making a mistake! I'm not mafia!",
	"I was loyal to the town until the end...",
	"You'll regret this decision!",
	"Mark my words, I'm innocent!",
	"The real mafia is still among you!",
	"This is unfair! I don't deserve this!",
	"Farewell, friends... I hope you find the real mafia.",
	"You just killed a townsperson. Nice work, mafia!",
}

// mafiaLastWord is spoken by an eliminated bot mafioso.
const mafiaLastWord = "So you figured me out... But this isn't over!"
