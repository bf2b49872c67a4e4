// Package i18n localizes menu and HUD text with golang.org/x/text catalogs.
package i18n

import (
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Height and Best take a float, Falls an int, Time and Cleared a
// preformatted duration.
const (
	Title        = "title"
	Start        = "start"
	Settings     = "settings"
	Records      = "records"
	Quit         = "quit"
	Paused       = "paused"
	Resume       = "resume"
	Restart      = "restart"
	ToMain       = "to_main"
	BGMVolume    = "bgm_volume"
	SEVolume     = "se_volume"
	Language     = "language"
	Difficulty   = "difficulty"
	Back         = "back"
	Stage        = "stage"
	Height       = "height"
	Best         = "best"
	Falls        = "falls"
	Time         = "time"
	Cleared      = "cleared"
	NoRecords    = "no_records"
	ControlMove  = "control_move"
	ControlJump  = "control_jump"
	ControlPause = "control_pause"
	ControlDebug = "control_debug"
)

var translations = map[language.Tag]map[string]string{
	language.English: {
		Title:        "The Bear Who Wanted to Become Human",
		Start:        "Start Game",
		Settings:     "Settings",
		Records:      "Records",
		Quit:         "Quit",
		Paused:       "Paused",
		Resume:       "Resume",
		Restart:      "Restart",
		ToMain:       "Main Menu",
		BGMVolume:    "BGM Volume",
		SEVolume:     "SE Volume",
		Language:     "Language",
		Difficulty:   "Difficulty",
		Back:         "Back",
		Stage:        "Stage",
		Height:       "Height %.0fm",
		Best:         "Best %.0fm",
		Falls:        "Falls %d",
		Time:         "Time %s",
		Cleared:      "Cleared in %s!",
		NoRecords:    "No runs yet",
		ControlMove:  "← → : Move",
		ControlJump:  "Space : Jump",
		ControlPause: "ESC : Pause",
		ControlDebug: "F3 : Debug",
	},
	language.Korean: {
		Title:        "그 곰은 인간이 되고 싶어",
		Start:        "게임 시작",
		Settings:     "설정",
		Records:      "기록",
		Quit:         "종료",
		Paused:       "일시정지",
		Resume:       "계속하기",
		Restart:      "재시작",
		ToMain:       "메인 메뉴",
		BGMVolume:    "BGM 볼륨",
		SEVolume:     "효과음 볼륨",
		Language:     "언어",
		Difficulty:   "난이도",
		Back:         "돌아가기",
		Stage:        "스테이지",
		Height:       "높이 %.0fm",
		Best:         "최고 %.0fm",
		Falls:        "추락 %d회",
		Time:         "시간 %s",
		Cleared:      "클리어! %s",
		NoRecords:    "기록이 없습니다",
		ControlMove:  "← → : 이동",
		ControlJump:  "Space : 점프",
		ControlPause: "ESC : 일시정지",
		ControlDebug: "F3 : 디버그",
	},
	language.Japanese: {
		Title:        "あのクマは人間になりたい",
		Start:        "ゲーム開始",
		Settings:     "設定",
		Records:      "記録",
		Quit:         "終了",
		Paused:       "一時停止",
		Resume:       "続ける",
		Restart:      "再スタート",
		ToMain:       "メインメニュー",
		BGMVolume:    "BGM音量",
		SEVolume:     "SE音量",
		Language:     "言語",
		Difficulty:   "難易度",
		Back:         "戻る",
		Stage:        "ステージ",
		Height:       "高さ %.0fm",
		Best:         "最高 %.0fm",
		Falls:        "落下 %d回",
		Time:         "時間 %s",
		Cleared:      "クリア！ %s",
		NoRecords:    "記録がありません",
		ControlMove:  "← → : 移動",
		ControlJump:  "Space : ジャンプ",
		ControlPause: "ESC : 一時停止",
		ControlDebug: "F3 : デバッグ",
	},
}

// supported is ordered; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Korean, language.Japanese}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				log.Error("i18n: bad catalog entry", "lang", tag, "key", key, "err", err)
			}
		}
	}
	return b
}

// Printer formats messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a printer for a language code such as "ko" or "ja-JP".
// Unknown or malformed codes fall back to English.
func New(lang string) *Printer {
	tag := language.English
	if t, err := language.Parse(lang); err == nil {
		_, idx, conf := matcher.Match(t)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// T returns the localized message for key, formatted with args.
func (p *Printer) T(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Lang returns the base language code in use.
func (p *Printer) Lang() string {
	base, _ := p.tag.Base()
	return base.String()
}

// Supported returns the selectable language codes in menu order.
func Supported() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		base, _ := t.Base()
		out[i] = base.String()
	}
	return out
}

// Next returns the language after lang in menu order, wrapping around.
func Next(lang string) string {
	codes := Supported()
	for i, c := range codes {
		if c == lang {
			return codes[(i+1)%len(codes)]
		}
	}
	return codes[0]
}
