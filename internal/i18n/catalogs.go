package i18n

var catalogs = map[Lang]*Messages{
	Korean:   korean(),
	English:  english(),
	Japanese: japanese(),
	Chinese:  chinese(),
	Spanish:  spanish(),
}

func korean() *Messages {
	m := &Messages{
		LanguageName:       "한국어",
		AppTitle:           "주간 루틴 매니저",
		ThemeToggle:        "테마 변경",
		NotificationToggle: "알림 설정",
		Days:               [7]string{"월", "화", "수", "목", "금", "토", "일"},
		DaysFull:           [7]string{"월요일", "화요일", "수요일", "목요일", "금요일", "토요일", "일요일"},
		ScheduleTitle:      "스케줄",
		AddSchedule:        "스케줄 추가",
		AM:                 "오전",
		PM:                 "오후",
		MarkerFirst:        true,
		MarkerSep:          " ",
		NotificationBody:   "{day} {time}에 예정된 활동입니다.",
		Modal: ModalMessages{
			AddTitle:               "스케줄 추가",
			EditTitle:              "스케줄 수정",
			Time:                   "시간",
			ActivityName:           "활동명",
			ActivityPlaceholder:    "예: 운동, 독서, 요리...",
			Description:            "설명 (선택사항)",
			DescriptionPlaceholder: "상세 설명이나 메모...",
			ApplyDays:              "적용할 요일",
			SelectAll:              "모두 체크",
			EnableNotification:     "알림 받기",
			ApplyToAll:             "같은 활동명의 모든 요일에 적용",
			Cancel:                 "취소",
			Save:                   "저장",
		},
		Permission: PermissionMessages{
			Title:          "알림 허용",
			Message:        "스케줄 알림을 받으시겠습니까?",
			Later:          "나중에",
			Allow:          "허용",
			Denied:         "알림이 차단되어 앱 안에서만 표시됩니다.",
			Granted:        "알림이 허용되었습니다!",
			AlreadyGranted: "알림이 이미 허용되어 있습니다.",
		},
		Toast: ToastMessages{
			SelectDays:      "최소 1개 이상의 요일을 선택해주세요.",
			FillRequired:    "시간과 활동명을 입력해주세요.",
			ScheduleAdded:   affix{Suffix: "에 스케줄이 추가되었습니다."},
			ScheduleUpdated: affix{Suffix: "의 스케줄이 수정되었습니다."},
			ScheduleDeleted: "스케줄이 삭제되었습니다.",
			SaveError:       "저장 중 오류가 발생했습니다.",
			DeleteConfirm:   "이 스케줄을 삭제하시겠습니까?",
			DayCount:        "개 요일",
		},
	}
	m.EmptyState.Line1 = "아직 등록된 스케줄이 없습니다."
	m.EmptyState.Line2 = "스케줄을 추가해보세요!"
	m.Buttons.Edit = "수정"
	m.Buttons.Delete = "삭제"
	return m
}

func english() *Messages {
	m := &Messages{
		LanguageName:       "English",
		AppTitle:           "Weekly Routine Manager",
		ThemeToggle:        "Toggle Theme",
		NotificationToggle: "Notifications",
		Days:               [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		DaysFull:           [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		ScheduleTitle:      "Schedule",
		AddSchedule:        "Add Schedule",
		AM:                 "AM",
		PM:                 "PM",
		MarkerSep:          " ",
		NotificationBody:   "Scheduled for {day} at {time}.",
		Modal: ModalMessages{
			AddTitle:               "Add Schedule",
			EditTitle:              "Edit Schedule",
			Time:                   "Time",
			ActivityName:           "Activity",
			ActivityPlaceholder:    "e.g., Exercise, Reading, Cooking...",
			Description:            "Description (optional)",
			DescriptionPlaceholder: "Details or notes...",
			ApplyDays:              "Apply to Days",
			SelectAll:              "Select All",
			EnableNotification:     "Enable Notification",
			ApplyToAll:             "Apply to every day with this activity",
			Cancel:                 "Cancel",
			Save:                   "Save",
		},
		Permission: PermissionMessages{
			Title:          "Allow Notifications",
			Message:        "Would you like to receive schedule notifications?",
			Later:          "Later",
			Allow:          "Allow",
			Denied:         "Notifications are blocked. Reminders will only appear in the app.",
			Granted:        "Notifications allowed!",
			AlreadyGranted: "Notifications are already allowed.",
		},
		Toast: ToastMessages{
			SelectDays:      "Please select at least one day.",
			FillRequired:    "Please enter time and activity name.",
			ScheduleAdded:   affix{Prefix: "Schedule added to "},
			ScheduleUpdated: affix{Prefix: "Schedule updated for "},
			ScheduleDeleted: "Schedule deleted.",
			SaveError:       "An error occurred while saving.",
			DeleteConfirm:   "Are you sure you want to delete this schedule?",
			DayCount:        " day(s)",
		},
	}
	m.EmptyState.Line1 = "No schedules yet."
	m.EmptyState.Line2 = "Add your first schedule!"
	m.Buttons.Edit = "Edit"
	m.Buttons.Delete = "Delete"
	return m
}

func japanese() *Messages {
	m := &Messages{
		LanguageName:       "日本語",
		AppTitle:           "週間ルーティンマネージャー",
		ThemeToggle:        "テーマ変更",
		NotificationToggle: "通知設定",
		Days:               [7]string{"月", "火", "水", "木", "金", "土", "日"},
		DaysFull:           [7]string{"月曜日", "火曜日", "水曜日", "木曜日", "金曜日", "土曜日", "日曜日"},
		ScheduleTitle:      "スケジュール",
		AddSchedule:        "スケジュール追加",
		AM:                 "午前",
		PM:                 "午後",
		MarkerFirst:        true,
		NotificationBody:   "{day} {time}に予定されている活動です。",
		Modal: ModalMessages{
			AddTitle:               "スケジュール追加",
			EditTitle:              "スケジュール編集",
			Time:                   "時間",
			ActivityName:           "活動名",
			ActivityPlaceholder:    "例：運動、読書、料理...",
			Description:            "説明（任意）",
			DescriptionPlaceholder: "詳細説明やメモ...",
			ApplyDays:              "適用する曜日",
			SelectAll:              "すべて選択",
			EnableNotification:     "通知を受け取る",
			ApplyToAll:             "同じ活動名のすべての曜日に適用",
			Cancel:                 "キャンセル",
			Save:                   "保存",
		},
		Permission: PermissionMessages{
			Title:          "通知を許可",
			Message:        "スケジュール通知を受け取りますか？",
			Later:          "後で",
			Allow:          "許可",
			Denied:         "通知がブロックされているため、アプリ内にのみ表示されます。",
			Granted:        "通知が許可されました！",
			AlreadyGranted: "通知はすでに許可されています。",
		},
		Toast: ToastMessages{
			SelectDays:      "少なくとも1つの曜日を選択してください。",
			FillRequired:    "時間と活動名を入力してください。",
			ScheduleAdded:   affix{Suffix: "にスケジュールが追加されました。"},
			ScheduleUpdated: affix{Suffix: "のスケジュールが更新されました。"},
			ScheduleDeleted: "スケジュールが削除されました。",
			SaveError:       "保存中にエラーが発生しました。",
			DeleteConfirm:   "このスケジュールを削除しますか？",
			DayCount:        "日",
		},
	}
	m.EmptyState.Line1 = "まだスケジュールがありません。"
	m.EmptyState.Line2 = "スケジュールを追加してみましょう！"
	m.Buttons.Edit = "編集"
	m.Buttons.Delete = "削除"
	return m
}

func chinese() *Messages {
	m := &Messages{
		LanguageName:       "中文",
		AppTitle:           "每周日程管理器",
		ThemeToggle:        "切换主题",
		NotificationToggle: "通知设置",
		Days:               [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"},
		DaysFull:           [7]string{"星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"},
		ScheduleTitle:      "日程",
		AddSchedule:        "添加日程",
		AM:                 "上午",
		PM:                 "下午",
		MarkerFirst:        true,
		NotificationBody:   "已安排在{day} {time}的活动。",
		Modal: ModalMessages{
			AddTitle:               "添加日程",
			EditTitle:              "编辑日程",
			Time:                   "时间",
			ActivityName:           "活动名称",
			ActivityPlaceholder:    "例：运动、阅读、烹饪...",
			Description:            "描述（可选）",
			DescriptionPlaceholder: "详细说明或备注...",
			ApplyDays:              "应用到星期",
			SelectAll:              "全选",
			EnableNotification:     "启用通知",
			ApplyToAll:             "应用到所有同名活动",
			Cancel:                 "取消",
			Save:                   "保存",
		},
		Permission: PermissionMessages{
			Title:          "允许通知",
			Message:        "您要接收日程通知吗？",
			Later:          "稍后",
			Allow:          "允许",
			Denied:         "通知已被阻止，提醒只会在应用内显示。",
			Granted:        "已允许通知！",
			AlreadyGranted: "通知已经允许。",
		},
		Toast: ToastMessages{
			SelectDays:      "请至少选择一天。",
			FillRequired:    "请输入时间和活动名称。",
			ScheduleAdded:   affix{Prefix: "已添加日程到"},
			ScheduleUpdated: affix{Prefix: "已更新日程于"},
			ScheduleDeleted: "日程已删除。",
			SaveError:       "保存时出错。",
			DeleteConfirm:   "确定要删除此日程吗？",
			DayCount:        "天",
		},
	}
	m.EmptyState.Line1 = "还没有日程。"
	m.EmptyState.Line2 = "添加您的第一个日程！"
	m.Buttons.Edit = "编辑"
	m.Buttons.Delete = "删除"
	return m
}

func spanish() *Messages {
	m := &Messages{
		LanguageName:       "Español",
		AppTitle:           "Gestor de Rutina Semanal",
		ThemeToggle:        "Cambiar Tema",
		NotificationToggle: "Notificaciones",
		Days:               [7]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"},
		DaysFull:           [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"},
		ScheduleTitle:      "Horario",
		AddSchedule:        "Agregar Horario",
		AM:                 "a. m.",
		PM:                 "p. m.",
		MarkerSep:          " ",
		NotificationBody:   "Actividad programada para el {day} a las {time}.",
		Modal: ModalMessages{
			AddTitle:               "Agregar Horario",
			EditTitle:              "Editar Horario",
			Time:                   "Hora",
			ActivityName:           "Actividad",
			ActivityPlaceholder:    "ej: Ejercicio, Lectura, Cocina...",
			Description:            "Descripción (opcional)",
			DescriptionPlaceholder: "Detalles o notas...",
			ApplyDays:              "Aplicar a Días",
			SelectAll:              "Seleccionar Todo",
			EnableNotification:     "Habilitar Notificación",
			ApplyToAll:             "Aplicar a todos los días con esta actividad",
			Cancel:                 "Cancelar",
			Save:                   "Guardar",
		},
		Permission: PermissionMessages{
			Title:          "Permitir Notificaciones",
			Message:        "¿Desea recibir notificaciones de horarios?",
			Later:          "Más Tarde",
			Allow:          "Permitir",
			Denied:         "Las notificaciones están bloqueadas. Los recordatorios solo aparecerán en la aplicación.",
			Granted:        "¡Notificaciones permitidas!",
			AlreadyGranted: "Las notificaciones ya están permitidas.",
		},
		Toast: ToastMessages{
			SelectDays:      "Seleccione al menos un día.",
			FillRequired:    "Ingrese la hora y el nombre de la actividad.",
			ScheduleAdded:   affix{Prefix: "Horario agregado a "},
			ScheduleUpdated: affix{Prefix: "Horario actualizado para "},
			ScheduleDeleted: "Horario eliminado.",
			SaveError:       "Ocurrió un error al guardar.",
			DeleteConfirm:   "¿Está seguro de que desea eliminar este horario?",
			DayCount:        " día(s)",
		},
	}
	m.EmptyState.Line1 = "Aún no hay horarios."
	m.EmptyState.Line2 = "¡Agrega tu primer horario!"
	m.Buttons.Edit = "Editar"
	m.Buttons.Delete = "Eliminar"
	return m
}
