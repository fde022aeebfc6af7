package code

// lang stores English and Chinese message text.
// lang 类型，用来存储英文和中文文本
type lang struct {
	en   string // English // 英文
	zhCN string // Chinese // 中文
}

// Default language is English // 默认语言为英文
var lng = "en"

// SetLanguage switches the message language ("en" or "zh-cn").
func SetLanguage(l string) {
	lng = l
}

// GetMessage returns the message for the active language, falling back
// to English when the active language has no text.
func (l lang) GetMessage() string {
	if lng == "zh-cn" && l.zhCN != "" {
		return l.zhCN
	}
	return l.en
}

var (
	Success             = NewSuss(200, lang{en: "Success", zhCN: "成功"})
	Failed              = NewError(1, lang{en: "Failed", zhCN: "失败"})
	ErrorServerInternal = NewError(10000, lang{en: "Server internal error", zhCN: "服务内部错误"})
	ErrorInvalidParams  = NewError(10001, lang{en: "Invalid request parameters", zhCN: "入参错误"})
	ErrorNotFound       = NewError(10002, lang{en: "Resource not found", zhCN: "资源不存在"})

	ErrorNoteNotFound        = NewError(20001, lang{en: "Note not found", zhCN: "笔记不存在"})
	ErrorNoteCreateFailed    = NewError(20002, lang{en: "Failed to create note", zhCN: "创建笔记失败"})
	ErrorNoteUpdateFailed    = NewError(20003, lang{en: "Failed to update note", zhCN: "更新笔记失败"})
	ErrorNoteDeleteFailed    = NewError(20004, lang{en: "Failed to delete note", zhCN: "删除笔记失败"})
	ErrorNoteListFailed      = NewError(20005, lang{en: "Failed to list notes", zhCN: "获取笔记列表失败"})
	ErrorReminderSetFailed   = NewError(20006, lang{en: "Failed to set reminder", zhCN: "设置提醒失败"})
	ErrorReminderClearFailed = NewError(20007, lang{en: "Failed to clear reminder", zhCN: "清除提醒失败"})
	ErrorInvalidInterval     = NewError(20008, lang{en: "Unknown repeat interval", zhCN: "未知的重复周期"})
)
